package server

import (
	"context"
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

type Meta struct {
	TraceID   string `json:"trace_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

type AddLevelRequest struct {
	LevelID   int `json:"level_id"`
	CarSpots  int `json:"car_spots"`
	BikeSpots int `json:"bike_spots"`
}

type ParkRequest struct {
	VehicleType  string `json:"vehicle_type"`
	Registration string `json:"registration"`
}

type ParkResponse struct {
	LevelID      int    `json:"level_id"`
	SpotID       int    `json:"spot_id"`
	VehicleType  string `json:"vehicle_type"`
	Registration string `json:"registration"`
}

type UnparkRequest struct {
	LevelID int `json:"level_id"`
	SpotID  int `json:"spot_id"`
}

type LevelAvailability struct {
	LevelID  int `json:"level_id"`
	FreeCar  int `json:"free_car"`
	FreeBike int `json:"free_bike"`
}

type AvailabilityResponse struct {
	Levels []LevelAvailability `json:"levels"`
	Report string              `json:"report"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func extractMeta(ctx context.Context) *Meta {
	meta := &Meta{}

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().HasTraceID() {
		meta.TraceID = span.SpanContext().TraceID().String()
	}

	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		meta.RequestID = reqID
	}

	return meta
}

func WriteSuccess(ctx context.Context, w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    extractMeta(ctx),
	})
}

func WriteError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Response{
		Success: false,
		Error:   message,
		Meta:    extractMeta(ctx),
	})
}
