package trip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frontandrew/weighbridge/internal/domain"
	"github.com/frontandrew/weighbridge/internal/pkg/logger"
	"github.com/frontandrew/weighbridge/internal/repository"
	"github.com/google/uuid"
)

// OpenTripRequest - запрос на открытие поездки (гейт-ин)
type OpenTripRequest struct {
	VehicleID         uuid.UUID           `json:"vehicle_id" validate:"required"`
	TransporterID     uuid.UUID           `json:"transporter_id,omitempty"`
	MovementType      domain.MovementType `json:"movement_type" validate:"required"`
	DocumentType      domain.DocumentType `json:"document_type" validate:"required"`
	LinkedDocumentRef string              `json:"linked_document_ref" validate:"required"`
	Remarks           string              `json:"remarks,omitempty"`
}

// Service - реестр поездок через весовую
// Единственная точка мутации поездок: все переходы состояния проходят
// через методы сервиса, наружу отдаются только снимки.
// Каждая успешная мутация записывается вместе с событием аудита;
// состояние подтверждается клиенту только после записи в хранилище
type Service struct {
	tripRepo        repository.TripRepository
	vehicleRepo     repository.VehicleRepository
	transporterRepo repository.TransporterRepository
	logger          logger.Logger
}

// NewService создает новый экземпляр TripService
func NewService(
	tripRepo repository.TripRepository,
	vehicleRepo repository.VehicleRepository,
	transporterRepo repository.TransporterRepository,
	logger logger.Logger,
) *Service {
	return &Service{
		tripRepo:        tripRepo,
		vehicleRepo:     vehicleRepo,
		transporterRepo: transporterRepo,
		logger:          logger,
	}
}

// OpenTrip открывает новую поездку в состоянии gate_in
func (s *Service) OpenTrip(ctx context.Context, req *OpenTripRequest, actorID uuid.UUID) (*domain.WeighbridgeTrip, error) {
	s.logger.Info("Opening new trip", map[string]interface{}{
		"vehicle_id":    req.VehicleID,
		"movement_type": req.MovementType,
		"document_type": req.DocumentType,
	})

	// Машина должна существовать и быть в активном парке
	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.IsActive {
		return nil, domain.ErrVehicleInactive
	}

	// Перевозчик по умолчанию наследуется от машины, но хранится в поездке
	// отдельно: исторические записи не меняются при смене владельца машины
	transporterID := req.TransporterID
	if transporterID == uuid.Nil {
		transporterID = vehicle.TransporterID
	}

	transporter, err := s.transporterRepo.GetByID(ctx, transporterID)
	if err != nil {
		return nil, err
	}
	if !transporter.IsActive {
		return nil, domain.ErrTransporterInactive
	}

	tripNo, err := s.tripRepo.NextTripNo(ctx, time.Now().Year())
	if err != nil {
		return nil, fmt.Errorf("failed to allocate trip number: %w", err)
	}

	trip, err := domain.NewTrip(tripNo, vehicle, transporter, req.MovementType, req.DocumentType, req.LinkedDocumentRef)
	if err != nil {
		return nil, err
	}
	trip.Remarks = req.Remarks

	event := domain.NewTripEvent(trip, domain.TripOpOpen, &actorID)
	if err := s.tripRepo.Create(ctx, trip, event); err != nil {
		s.logger.Error("Failed to persist new trip", map[string]interface{}{
			"trip_no": trip.TripNo,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	s.logger.Info("Trip opened", map[string]interface{}{
		"trip_id": trip.ID,
		"trip_no": trip.TripNo,
	})

	return trip, nil
}

// RecordFirstWeighment фиксирует первый проезд машины через весы
// Входящая поездка получает брутто, исходящая - тару
func (s *Service) RecordFirstWeighment(ctx context.Context, tripID uuid.UUID, weight float64, actorID uuid.UUID) (*domain.WeighbridgeTrip, error) {
	return s.mutate(ctx, tripID, domain.TripOpWeighIn, actorID, func(t *domain.WeighbridgeTrip) error {
		return t.ApplyFirstWeighment(weight, time.Now())
	})
}

// RecordSecondWeighment фиксирует второй проезд и вычисляет нетто
func (s *Service) RecordSecondWeighment(ctx context.Context, tripID uuid.UUID, weight float64, actorID uuid.UUID) (*domain.WeighbridgeTrip, error) {
	return s.mutate(ctx, tripID, domain.TripOpWeighOut, actorID, func(t *domain.WeighbridgeTrip) error {
		return t.ApplySecondWeighment(weight, time.Now())
	})
}

// GateOut завершает поездку после второго взвешивания
func (s *Service) GateOut(ctx context.Context, tripID uuid.UUID, actorID uuid.UUID) (*domain.WeighbridgeTrip, error) {
	return s.mutate(ctx, tripID, domain.TripOpGateOut, actorID, func(t *domain.WeighbridgeTrip) error {
		return t.ApplyGateOut(time.Now())
	})
}

// CancelTrip отменяет поездку из любого нетерминального состояния
func (s *Service) CancelTrip(ctx context.Context, tripID uuid.UUID, reason string, actorID uuid.UUID) (*domain.WeighbridgeTrip, error) {
	return s.mutate(ctx, tripID, domain.TripOpCancel, actorID, func(t *domain.WeighbridgeTrip) error {
		return t.ApplyCancel(reason, time.Now())
	})
}

// mutate загружает поездку, применяет переход и сохраняет результат
// вместе с событием аудита под проверкой версии
func (s *Service) mutate(ctx context.Context, tripID uuid.UUID, op domain.TripOperation, actorID uuid.UUID, apply func(*domain.WeighbridgeTrip) error) (*domain.WeighbridgeTrip, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if err := apply(trip); err != nil {
		return nil, err
	}

	event := domain.NewTripEvent(trip, op, &actorID)
	if err := s.tripRepo.Update(ctx, trip, event); err != nil {
		if errors.Is(err, domain.ErrConcurrentModification) {
			s.logger.Warn("Concurrent trip modification detected", map[string]interface{}{
				"trip_id":   tripID,
				"operation": op,
			})
			return nil, err
		}
		s.logger.Error("Failed to persist trip mutation", map[string]interface{}{
			"trip_id":   tripID,
			"operation": op,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("failed to persist trip: %w", err)
	}

	s.logger.Info("Trip mutation applied", map[string]interface{}{
		"trip_id":   trip.ID,
		"trip_no":   trip.TripNo,
		"operation": op,
		"status":    trip.Status,
	})

	return trip, nil
}

// GetTrip возвращает поездку вместе с полным журналом аудита
func (s *Service) GetTrip(ctx context.Context, tripID uuid.UUID) (*domain.WeighbridgeTrip, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	events, err := s.tripRepo.GetEvents(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to load trip history: %w", err)
	}
	trip.History = events

	return trip, nil
}

// ListActiveTrips возвращает незавершенные поездки по возрастанию времени въезда
func (s *Service) ListActiveTrips(ctx context.Context, limit, offset int) ([]*domain.WeighbridgeTrip, error) {
	return s.tripRepo.ListActive(ctx, limit, offset)
}

// ListTrips возвращает все поездки, свежие первыми
func (s *Service) ListTrips(ctx context.Context, limit, offset int) ([]*domain.WeighbridgeTrip, error) {
	return s.tripRepo.List(ctx, limit, offset)
}

// FindOpenTripByVehicleNo возвращает самую свежую незавершенную поездку
// машины с указанным регистрационным номером
func (s *Service) FindOpenTripByVehicleNo(ctx context.Context, vehicleNo string) (*domain.WeighbridgeTrip, error) {
	vehicle, err := s.vehicleRepo.GetByVehicleNo(ctx, vehicleNo)
	if err != nil {
		return nil, err
	}

	return s.tripRepo.FindOpenByVehicle(ctx, vehicle.ID)
}
