package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"parking-garage/internal/parking"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	telemetry, err := parking.NewTelemetryProvider("parking-garage-test", "http://localhost:4318")
	if err != nil {
		t.Fatalf("Failed to initialize telemetry: %v", err)
	}
	t.Cleanup(func() {
		if err := telemetry.Shutdown(context.Background()); err != nil {
			t.Logf("Failed to shutdown telemetry: %v", err)
		}
	})

	lot, err := parking.NewInstrumentedLot(telemetry)
	if err != nil {
		t.Fatalf("Failed to create garage: %v", err)
	}

	return NewHandler(lot)
}

func postJSON(t *testing.T, handlerFunc http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	handlerFunc(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp
}

func TestHandlerAddLevel(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.AddLevel, AddLevelRequest{LevelID: 1, CarSpots: 2, BikeSpots: 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, h.AddLevel, AddLevelRequest{LevelID: 1, CarSpots: 1, BikeSpots: 1})
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 for duplicate level, got %d", rec.Code)
	}

	rec = postJSON(t, h.AddLevel, AddLevelRequest{LevelID: 2, CarSpots: -1, BikeSpots: 0})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for negative capacity, got %d", rec.Code)
	}
}

func TestHandlerParkAndUnpark(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.AddLevel, AddLevelRequest{LevelID: 1, CarSpots: 1, BikeSpots: 0})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	rec = postJSON(t, h.Park, ParkRequest{VehicleType: "CAR", Registration: "KA01HH1234"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Error("Expected success response")
	}

	var parked ParkResponse
	data, _ := json.Marshal(resp.Data)
	if err := json.Unmarshal(data, &parked); err != nil {
		t.Fatalf("Failed to decode placement: %v", err)
	}
	if parked.LevelID != 1 {
		t.Errorf("Expected level 1, got %d", parked.LevelID)
	}

	// Lot is full for cars now.
	rec = postJSON(t, h.Park, ParkRequest{VehicleType: "CAR", Registration: "KA01HH9999"})
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 when full, got %d", rec.Code)
	}

	rec = postJSON(t, h.Unpark, UnparkRequest{LevelID: parked.LevelID, SpotID: parked.SpotID})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, h.Unpark, UnparkRequest{LevelID: parked.LevelID, SpotID: parked.SpotID})
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 on double unpark, got %d", rec.Code)
	}

	rec = postJSON(t, h.Unpark, UnparkRequest{LevelID: 99, SpotID: 1})
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown level, got %d", rec.Code)
	}
}

func TestHandlerParkValidation(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.Park, ParkRequest{VehicleType: "TRUCK", Registration: "X"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown vehicle type, got %d", rec.Code)
	}

	rec = postJSON(t, h.Park, ParkRequest{VehicleType: "CAR"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing registration, got %d", rec.Code)
	}
}

func TestHandlerGetAvailability(t *testing.T) {
	h := newTestHandler(t)

	postJSON(t, h.AddLevel, AddLevelRequest{LevelID: 1, CarSpots: 2, BikeSpots: 2})
	postJSON(t, h.AddLevel, AddLevelRequest{LevelID: 2, CarSpots: 1, BikeSpots: 3})
	postJSON(t, h.Park, ParkRequest{VehicleType: "CAR", Registration: "CAR123"})
	postJSON(t, h.Park, ParkRequest{VehicleType: "BIKE", Registration: "BIKE456"})

	req := httptest.NewRequest(http.MethodGet, "/api/garage/availability", nil)
	rec := httptest.NewRecorder()
	h.GetAvailability(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	resp := decodeResponse(t, rec)
	var avail AvailabilityResponse
	data, _ := json.Marshal(resp.Data)
	if err := json.Unmarshal(data, &avail); err != nil {
		t.Fatalf("Failed to decode availability: %v", err)
	}

	if len(avail.Levels) != 2 {
		t.Fatalf("Expected 2 levels, got %d", len(avail.Levels))
	}
	if avail.Levels[0].FreeCar != 1 || avail.Levels[0].FreeBike != 1 {
		t.Errorf("Expected level 1 CAR=1 BIKE=1, got CAR=%d BIKE=%d",
			avail.Levels[0].FreeCar, avail.Levels[0].FreeBike)
	}
	if avail.Levels[1].FreeCar != 1 || avail.Levels[1].FreeBike != 3 {
		t.Errorf("Expected level 2 CAR=1 BIKE=3, got CAR=%d BIKE=%d",
			avail.Levels[1].FreeCar, avail.Levels[1].FreeBike)
	}
}

func TestHandlerHealthCheck(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}
