package fleet

import (
	"context"
	"errors"
	"fmt"

	"github.com/frontandrew/weighbridge/internal/domain"
	"github.com/frontandrew/weighbridge/internal/pkg/logger"
	"github.com/frontandrew/weighbridge/internal/repository"
	"github.com/google/uuid"
)

// CreateVehicleRequest - запрос на регистрацию транспортного средства
type CreateVehicleRequest struct {
	VehicleNo     string             `json:"vehicle_no" validate:"required"`
	VehicleType   domain.VehicleType `json:"vehicle_type" validate:"required"`
	CapacityMT    float64            `json:"capacity_mt" validate:"required"`
	TransporterID uuid.UUID          `json:"transporter_id" validate:"required"`
}

// CreateTransporterRequest - запрос на регистрацию перевозчика
type CreateTransporterRequest struct {
	Name          string `json:"name" validate:"required"`
	GSTNo         string `json:"gst_no,omitempty"`
	ContactPerson string `json:"contact_person" validate:"required"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
}

// Service содержит бизнес-логику администрирования автопарка
type Service struct {
	vehicleRepo     repository.VehicleRepository
	transporterRepo repository.TransporterRepository
	logger          logger.Logger
}

// NewService создает новый экземпляр FleetService
func NewService(
	vehicleRepo repository.VehicleRepository,
	transporterRepo repository.TransporterRepository,
	logger logger.Logger,
) *Service {
	return &Service{
		vehicleRepo:     vehicleRepo,
		transporterRepo: transporterRepo,
		logger:          logger,
	}
}

// CreateVehicle регистрирует новое транспортное средство
func (s *Service) CreateVehicle(ctx context.Context, req *CreateVehicleRequest) (*domain.Vehicle, error) {
	s.logger.Info("Registering new vehicle", map[string]interface{}{
		"vehicle_no":     req.VehicleNo,
		"transporter_id": req.TransporterID,
	})

	// Проверяем, что перевозчик существует и активен
	transporter, err := s.transporterRepo.GetByID(ctx, req.TransporterID)
	if err != nil {
		return nil, err
	}
	if !transporter.IsActive {
		return nil, domain.ErrTransporterInactive
	}

	// Проверяем, что машина с таким номером еще не зарегистрирована
	existing, err := s.vehicleRepo.GetByVehicleNo(ctx, req.VehicleNo)
	if err != nil && !errors.Is(err, domain.ErrVehicleNotFound) {
		return nil, fmt.Errorf("failed to check existing vehicle: %w", err)
	}
	if existing != nil {
		s.logger.Warn("Vehicle already exists", map[string]interface{}{
			"vehicle_no": req.VehicleNo,
		})
		return nil, domain.ErrVehicleAlreadyExists
	}

	vehicle := &domain.Vehicle{
		VehicleNo:     req.VehicleNo,
		VehicleType:   req.VehicleType,
		CapacityMT:    req.CapacityMT,
		TransporterID: req.TransporterID,
		IsActive:      true,
	}

	if err := vehicle.Validate(); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		s.logger.Error("Failed to create vehicle", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	s.logger.Info("Vehicle registered", map[string]interface{}{
		"vehicle_id": vehicle.ID,
		"vehicle_no": vehicle.VehicleNo,
	})

	return vehicle, nil
}

// GetVehicleByID возвращает транспортное средство по ID
func (s *Service) GetVehicleByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

// GetVehicleByNo возвращает транспортное средство по регистрационному номеру
func (s *Service) GetVehicleByNo(ctx context.Context, vehicleNo string) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByVehicleNo(ctx, vehicleNo)
}

// ListVehicles возвращает список транспортных средств с пагинацией
func (s *Service) ListVehicles(ctx context.Context, limit, offset int) ([]*domain.Vehicle, error) {
	return s.vehicleRepo.List(ctx, limit, offset)
}

// DeactivateVehicle выводит машину из активного парка (мягкое удаление)
func (s *Service) DeactivateVehicle(ctx context.Context, id uuid.UUID) error {
	return s.vehicleRepo.Delete(ctx, id)
}

// CreateTransporter регистрирует нового перевозчика
func (s *Service) CreateTransporter(ctx context.Context, req *CreateTransporterRequest) (*domain.Transporter, error) {
	transporter := &domain.Transporter{
		Name:          req.Name,
		GSTNo:         req.GSTNo,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Address:       req.Address,
		IsActive:      true,
	}

	if err := transporter.Validate(); err != nil {
		return nil, err
	}

	if err := s.transporterRepo.Create(ctx, transporter); err != nil {
		s.logger.Error("Failed to create transporter", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create transporter: %w", err)
	}

	s.logger.Info("Transporter registered", map[string]interface{}{
		"transporter_id": transporter.ID,
		"name":           transporter.Name,
	})

	return transporter, nil
}

// GetTransporterByID возвращает перевозчика по ID
func (s *Service) GetTransporterByID(ctx context.Context, id uuid.UUID) (*domain.Transporter, error) {
	return s.transporterRepo.GetByID(ctx, id)
}

// ListTransporters возвращает список перевозчиков с пагинацией
func (s *Service) ListTransporters(ctx context.Context, limit, offset int) ([]*domain.Transporter, error) {
	return s.transporterRepo.List(ctx, limit, offset)
}
