package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync"

	"parking-garage/internal/parking"
)

func getServiceName() string {
	if name := os.Getenv("OTEL_SERVICE_NAME"); name != "" {
		return name
	}
	return "parking-garage-service"
}

// Handler serves the garage API. The lot itself is single-threaded,
// so every operation runs under the handler's lock: mutations take
// the write lock, availability reads take the read lock.
type Handler struct {
	lot *parking.InstrumentedLot
	mu  sync.RWMutex
}

func NewHandler(lot *parking.InstrumentedLot) *Handler {
	return &Handler{lot: lot}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": getServiceName(),
		"meta":    extractMeta(r.Context()),
	})
}

func (h *Handler) AddLevel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AddLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	level, err := parking.NewLevel(req.LevelID, req.CarSpots, req.BikeSpots)
	if err != nil {
		WriteError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	h.mu.Lock()
	err = h.lot.AddLevel(ctx, level)
	h.mu.Unlock()

	if err != nil {
		if errors.Is(err, parking.ErrDuplicateLevel) {
			WriteError(ctx, w, http.StatusConflict, err.Error())
			return
		}
		WriteError(ctx, w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteSuccess(ctx, w, "Level added successfully", map[string]any{
		"level_id":   req.LevelID,
		"car_spots":  req.CarSpots,
		"bike_spots": req.BikeSpots,
	})
}

func (h *Handler) Park(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ParkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Registration == "" {
		WriteError(ctx, w, http.StatusBadRequest, "Registration is required")
		return
	}

	vtype, ok := parking.ParseVehicleType(req.VehicleType)
	if !ok {
		WriteError(ctx, w, http.StatusBadRequest, "Vehicle type must be CAR or BIKE")
		return
	}

	h.mu.Lock()
	placement, err := h.lot.Park(ctx, parking.NewVehicle(vtype, req.Registration))
	h.mu.Unlock()

	if err != nil {
		if errors.Is(err, parking.ErrLotFull) {
			WriteError(ctx, w, http.StatusConflict, err.Error())
			return
		}
		WriteError(ctx, w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteSuccess(ctx, w, "Vehicle parked successfully", ParkResponse{
		LevelID:      placement.LevelID,
		SpotID:       placement.SpotID,
		VehicleType:  vtype.String(),
		Registration: req.Registration,
	})
}

func (h *Handler) Unpark(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UnparkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.mu.Lock()
	err := h.lot.Unpark(ctx, req.LevelID, req.SpotID)
	h.mu.Unlock()

	if err != nil {
		switch {
		case errors.Is(err, parking.ErrUnknownLevel), errors.Is(err, parking.ErrUnknownSpot):
			WriteError(ctx, w, http.StatusNotFound, err.Error())
		case errors.Is(err, parking.ErrSpotFree):
			WriteError(ctx, w, http.StatusConflict, err.Error())
		default:
			WriteError(ctx, w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	WriteSuccess(ctx, w, "Spot freed successfully", map[string]any{
		"level_id": req.LevelID,
		"spot_id":  req.SpotID,
	})
}

func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.mu.RLock()
	availability := h.lot.Availability(ctx)
	report := h.lot.AvailabilityReport()
	h.mu.RUnlock()

	levels := make([]LevelAvailability, 0, len(availability))
	for _, la := range availability {
		levels = append(levels, LevelAvailability{
			LevelID:  la.LevelID,
			FreeCar:  la.Free[parking.Car],
			FreeBike: la.Free[parking.Bike],
		})
	}

	WriteSuccess(ctx, w, "Availability retrieved successfully", AvailabilityResponse{
		Levels: levels,
		Report: report,
	})
}
