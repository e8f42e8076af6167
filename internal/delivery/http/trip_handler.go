package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/frontandrew/weighbridge/internal/delivery/http/middleware"
	"github.com/frontandrew/weighbridge/internal/domain"
	"github.com/frontandrew/weighbridge/internal/pkg/logger"
	"github.com/frontandrew/weighbridge/internal/usecase/trip"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// TripService определяет интерфейс реестра поездок
type TripService interface {
	OpenTrip(ctx context.Context, req *trip.OpenTripRequest, actorID uuid.UUID) (*domain.WeighbridgeTrip, error)
	RecordFirstWeighment(ctx context.Context, tripID uuid.UUID, weight float64, actorID uuid.UUID) (*domain.WeighbridgeTrip, error)
	RecordSecondWeighment(ctx context.Context, tripID uuid.UUID, weight float64, actorID uuid.UUID) (*domain.WeighbridgeTrip, error)
	GateOut(ctx context.Context, tripID uuid.UUID, actorID uuid.UUID) (*domain.WeighbridgeTrip, error)
	CancelTrip(ctx context.Context, tripID uuid.UUID, reason string, actorID uuid.UUID) (*domain.WeighbridgeTrip, error)
	GetTrip(ctx context.Context, tripID uuid.UUID) (*domain.WeighbridgeTrip, error)
	ListActiveTrips(ctx context.Context, limit, offset int) ([]*domain.WeighbridgeTrip, error)
	ListTrips(ctx context.Context, limit, offset int) ([]*domain.WeighbridgeTrip, error)
	FindOpenTripByVehicleNo(ctx context.Context, vehicleNo string) (*domain.WeighbridgeTrip, error)
}

// WeighmentRequest - тело запроса на взвешивание
type WeighmentRequest struct {
	Weight float64 `json:"weight"`
}

// CancelTripRequest - тело запроса на отмену поездки
type CancelTripRequest struct {
	Reason string `json:"reason"`
}

// TripHandler обрабатывает запросы весовой
type TripHandler struct {
	tripService TripService
	logger      logger.Logger
}

// NewTripHandler создает новый handler
func NewTripHandler(tripService TripService, logger logger.Logger) *TripHandler {
	return &TripHandler{
		tripService: tripService,
		logger:      logger,
	}
}

// OpenTrip открывает новую поездку (гейт-ин)
// POST /api/v1/trips
func (h *TripHandler) OpenTrip(w http.ResponseWriter, r *http.Request) {
	var req trip.OpenTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	t, err := h.tripService.OpenTrip(r.Context(), &req, claims.UserID)
	if err != nil {
		h.respondTripError(w, err, "Failed to open trip")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    t,
	})
}

// RecordFirstWeighment фиксирует первый проезд через весы
// POST /api/v1/trips/{id}/weigh-in
func (h *TripHandler) RecordFirstWeighment(w http.ResponseWriter, r *http.Request) {
	h.recordWeighment(w, r, h.tripService.RecordFirstWeighment)
}

// RecordSecondWeighment фиксирует второй проезд через весы
// POST /api/v1/trips/{id}/weigh-out
func (h *TripHandler) RecordSecondWeighment(w http.ResponseWriter, r *http.Request) {
	h.recordWeighment(w, r, h.tripService.RecordSecondWeighment)
}

func (h *TripHandler) recordWeighment(w http.ResponseWriter, r *http.Request, capture func(context.Context, uuid.UUID, float64, uuid.UUID) (*domain.WeighbridgeTrip, error)) {
	tripID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid trip ID")
		return
	}

	var req WeighmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	t, err := capture(r.Context(), tripID, req.Weight, claims.UserID)
	if err != nil {
		h.respondTripError(w, err, "Failed to record weighment")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    t,
	})
}

// GateOut завершает поездку
// POST /api/v1/trips/{id}/gate-out
func (h *TripHandler) GateOut(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid trip ID")
		return
	}

	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	t, err := h.tripService.GateOut(r.Context(), tripID, claims.UserID)
	if err != nil {
		h.respondTripError(w, err, "Failed to gate out")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    t,
	})
}

// CancelTrip отменяет поездку
// POST /api/v1/trips/{id}/cancel
func (h *TripHandler) CancelTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid trip ID")
		return
	}

	var req CancelTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	t, err := h.tripService.CancelTrip(r.Context(), tripID, req.Reason, claims.UserID)
	if err != nil {
		h.respondTripError(w, err, "Failed to cancel trip")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    t,
	})
}

// GetTrip возвращает поездку с полным журналом аудита
// GET /api/v1/trips/{id}
func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid trip ID")
		return
	}

	t, err := h.tripService.GetTrip(r.Context(), tripID)
	if err != nil {
		h.respondTripError(w, err, "Failed to get trip")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    t,
	})
}

// ListTrips возвращает поездки; ?status=active - только незавершенные,
// отсортированные по времени въезда
// GET /api/v1/trips
func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	limit, offset := getPagination(r)

	var (
		trips []*domain.WeighbridgeTrip
		err   error
	)
	if r.URL.Query().Get("status") == "active" {
		trips, err = h.tripService.ListActiveTrips(r.Context(), limit, offset)
	} else {
		trips, err = h.tripService.ListTrips(r.Context(), limit, offset)
	}

	if err != nil {
		h.logger.Error("Failed to list trips", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to list trips")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    trips,
		"limit":   limit,
		"offset":  offset,
	})
}

// FindOpenTripByVehicle возвращает незавершенную поездку машины по ее номеру
// GET /api/v1/trips/vehicle/{vehicleNo}
func (h *TripHandler) FindOpenTripByVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleNo := chi.URLParam(r, "vehicleNo")
	if vehicleNo == "" {
		respondError(w, http.StatusBadRequest, "Vehicle number required")
		return
	}

	t, err := h.tripService.FindOpenTripByVehicleNo(r.Context(), vehicleNo)
	if err != nil {
		h.respondTripError(w, err, "Failed to find trip")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    t,
	})
}

// respondTripError преобразует доменную ошибку в HTTP статус
// Ошибки валидации - 400, конфликт состояния и конкурентная запись - 409,
// отсутствующие сущности - 404
func (h *TripHandler) respondTripError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrTripNotFound),
		errors.Is(err, domain.ErrVehicleNotFound),
		errors.Is(err, domain.ErrTransporterNotFound):
		respondError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, domain.ErrInvalidTripState),
		errors.Is(err, domain.ErrTripTerminal),
		errors.Is(err, domain.ErrNetWeightNotComputed),
		errors.Is(err, domain.ErrConcurrentModification):
		respondError(w, http.StatusConflict, err.Error())

	case errors.Is(err, domain.ErrInvalidWeight),
		errors.Is(err, domain.ErrNegativeNetWeight),
		errors.Is(err, domain.ErrMissingDocumentRef),
		errors.Is(err, domain.ErrInvalidMovementType),
		errors.Is(err, domain.ErrInvalidDocumentType),
		errors.Is(err, domain.ErrVehicleInactive),
		errors.Is(err, domain.ErrTransporterInactive):
		respondError(w, http.StatusBadRequest, err.Error())

	default:
		h.logger.Error(fallback, map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
