package http

import (
	"context"
	"testing"
	"time"

	"github.com/frontandrew/weighbridge/internal/delivery/http/middleware"
	"github.com/frontandrew/weighbridge/internal/domain"
	"github.com/frontandrew/weighbridge/internal/pkg/jwt"
	"github.com/frontandrew/weighbridge/internal/usecase/fleet"
	"github.com/frontandrew/weighbridge/internal/usecase/trip"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// CreateAuthContext создает контекст с JWT claims для тестирования
func CreateAuthContext(t *testing.T, userID uuid.UUID, email string, role domain.UserRole) context.Context {
	t.Helper()
	claims := &jwt.Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
	}
	return context.WithValue(context.Background(), middleware.UserClaimsKey, claims)
}

// CreateTestTrip создает поездку в состоянии gate_in для тестирования
func CreateTestTrip(id uuid.UUID, movement domain.MovementType) *domain.WeighbridgeTrip {
	return &domain.WeighbridgeTrip{
		ID:                id,
		TripNo:            "TRIP-2026-042",
		VehicleID:         uuid.New(),
		TransporterID:     uuid.New(),
		MovementType:      movement,
		DocumentType:      domain.DocumentCane,
		LinkedDocumentRef: "PO-4521",
		Status:            domain.TripStatusGateIn,
		GateInTime:        time.Now(),
		Version:           1,
	}
}

// CreateTestVehicle создает транспортное средство для тестирования
func CreateTestVehicle(id uuid.UUID) *domain.Vehicle {
	return &domain.Vehicle{
		ID:            id,
		VehicleNo:     "KA01AB1234",
		VehicleType:   domain.VehicleTypeTruck,
		CapacityMT:    25,
		TransporterID: uuid.New(),
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

// CreateTestTransporter создает перевозчика для тестирования
func CreateTestTransporter(id uuid.UUID) *domain.Transporter {
	return &domain.Transporter{
		ID:        id,
		Name:      "Shree Logistics",
		GSTNo:     "29ABCDE1234F1Z5",
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// MockTripService - mock реализация TripService
type MockTripService struct {
	mock.Mock
}

func (m *MockTripService) OpenTrip(ctx context.Context, req *trip.OpenTripRequest, actorID uuid.UUID) (*domain.WeighbridgeTrip, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeighbridgeTrip), args.Error(1)
}

func (m *MockTripService) RecordFirstWeighment(ctx context.Context, tripID uuid.UUID, weight float64, actorID uuid.UUID) (*domain.WeighbridgeTrip, error) {
	args := m.Called(ctx, tripID, weight, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeighbridgeTrip), args.Error(1)
}

func (m *MockTripService) RecordSecondWeighment(ctx context.Context, tripID uuid.UUID, weight float64, actorID uuid.UUID) (*domain.WeighbridgeTrip, error) {
	args := m.Called(ctx, tripID, weight, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeighbridgeTrip), args.Error(1)
}

func (m *MockTripService) GateOut(ctx context.Context, tripID uuid.UUID, actorID uuid.UUID) (*domain.WeighbridgeTrip, error) {
	args := m.Called(ctx, tripID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeighbridgeTrip), args.Error(1)
}

func (m *MockTripService) CancelTrip(ctx context.Context, tripID uuid.UUID, reason string, actorID uuid.UUID) (*domain.WeighbridgeTrip, error) {
	args := m.Called(ctx, tripID, reason, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeighbridgeTrip), args.Error(1)
}

func (m *MockTripService) GetTrip(ctx context.Context, tripID uuid.UUID) (*domain.WeighbridgeTrip, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeighbridgeTrip), args.Error(1)
}

func (m *MockTripService) ListActiveTrips(ctx context.Context, limit, offset int) ([]*domain.WeighbridgeTrip, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WeighbridgeTrip), args.Error(1)
}

func (m *MockTripService) ListTrips(ctx context.Context, limit, offset int) ([]*domain.WeighbridgeTrip, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WeighbridgeTrip), args.Error(1)
}

func (m *MockTripService) FindOpenTripByVehicleNo(ctx context.Context, vehicleNo string) (*domain.WeighbridgeTrip, error) {
	args := m.Called(ctx, vehicleNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeighbridgeTrip), args.Error(1)
}

// MockFleetService - mock реализация FleetService
type MockFleetService struct {
	mock.Mock
}

func (m *MockFleetService) CreateVehicle(ctx context.Context, req *fleet.CreateVehicleRequest) (*domain.Vehicle, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockFleetService) GetVehicleByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockFleetService) ListVehicles(ctx context.Context, limit, offset int) ([]*domain.Vehicle, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vehicle), args.Error(1)
}

func (m *MockFleetService) CreateTransporter(ctx context.Context, req *fleet.CreateTransporterRequest) (*domain.Transporter, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transporter), args.Error(1)
}

func (m *MockFleetService) GetTransporterByID(ctx context.Context, id uuid.UUID) (*domain.Transporter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transporter), args.Error(1)
}

func (m *MockFleetService) ListTransporters(ctx context.Context, limit, offset int) ([]*domain.Transporter, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transporter), args.Error(1)
}
