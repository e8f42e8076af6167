package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/frontandrew/weighbridge/internal/domain"
	"github.com/frontandrew/weighbridge/internal/pkg/logger"
	"github.com/frontandrew/weighbridge/internal/usecase/fleet"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// FleetService определяет интерфейс сервиса автопарка
type FleetService interface {
	CreateVehicle(ctx context.Context, req *fleet.CreateVehicleRequest) (*domain.Vehicle, error)
	GetVehicleByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context, limit, offset int) ([]*domain.Vehicle, error)
	CreateTransporter(ctx context.Context, req *fleet.CreateTransporterRequest) (*domain.Transporter, error)
	GetTransporterByID(ctx context.Context, id uuid.UUID) (*domain.Transporter, error)
	ListTransporters(ctx context.Context, limit, offset int) ([]*domain.Transporter, error)
}

// FleetHandler обрабатывает запросы администрирования автопарка
type FleetHandler struct {
	fleetService FleetService
	logger       logger.Logger
}

// NewFleetHandler создает новый handler
func NewFleetHandler(fleetService FleetService, logger logger.Logger) *FleetHandler {
	return &FleetHandler{
		fleetService: fleetService,
		logger:       logger,
	}
}

// CreateVehicle регистрирует новое транспортное средство
// POST /api/v1/vehicles
func (h *FleetHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req fleet.CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	v, err := h.fleetService.CreateVehicle(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVehicleAlreadyExists):
			respondError(w, http.StatusConflict, "Vehicle already exists")
		case errors.Is(err, domain.ErrTransporterNotFound):
			respondError(w, http.StatusNotFound, "Transporter not found")
		case errors.Is(err, domain.ErrInvalidVehicleNo),
			errors.Is(err, domain.ErrInvalidVehicleData),
			errors.Is(err, domain.ErrTransporterInactive):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Failed to create vehicle", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to create vehicle")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    v,
	})
}

// GetVehicleByID возвращает транспортное средство по ID
// GET /api/v1/vehicles/{id}
func (h *FleetHandler) GetVehicleByID(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	v, err := h.fleetService.GetVehicleByID(r.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			respondError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		h.logger.Error("Failed to get vehicle", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get vehicle")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    v,
	})
}

// ListVehicles возвращает список транспортных средств
// GET /api/v1/vehicles
func (h *FleetHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	limit, offset := getPagination(r)

	vehicles, err := h.fleetService.ListVehicles(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list vehicles", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to list vehicles")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    vehicles,
	})
}

// CreateTransporter регистрирует нового перевозчика
// POST /api/v1/transporters
func (h *FleetHandler) CreateTransporter(w http.ResponseWriter, r *http.Request) {
	var req fleet.CreateTransporterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := h.fleetService.CreateTransporter(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransporterData) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to create transporter", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to create transporter")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    t,
	})
}

// GetTransporterByID возвращает перевозчика по ID
// GET /api/v1/transporters/{id}
func (h *FleetHandler) GetTransporterByID(w http.ResponseWriter, r *http.Request) {
	transporterID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid transporter ID")
		return
	}

	t, err := h.fleetService.GetTransporterByID(r.Context(), transporterID)
	if err != nil {
		if errors.Is(err, domain.ErrTransporterNotFound) {
			respondError(w, http.StatusNotFound, "Transporter not found")
			return
		}
		h.logger.Error("Failed to get transporter", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get transporter")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    t,
	})
}

// ListTransporters возвращает список перевозчиков
// GET /api/v1/transporters
func (h *FleetHandler) ListTransporters(w http.ResponseWriter, r *http.Request) {
	limit, offset := getPagination(r)

	transporters, err := h.fleetService.ListTransporters(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list transporters", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to list transporters")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    transporters,
	})
}
