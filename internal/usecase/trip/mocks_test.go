package trip

import (
	"context"

	"github.com/frontandrew/weighbridge/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTripRepository - mock реализация repository.TripRepository
type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.WeighbridgeTrip, event *domain.TripEvent) error {
	args := m.Called(ctx, trip, event)
	return args.Error(0)
}

func (m *MockTripRepository) Update(ctx context.Context, trip *domain.WeighbridgeTrip, event *domain.TripEvent) error {
	args := m.Called(ctx, trip, event)
	return args.Error(0)
}

func (m *MockTripRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.WeighbridgeTrip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeighbridgeTrip), args.Error(1)
}

func (m *MockTripRepository) GetByTripNo(ctx context.Context, tripNo string) (*domain.WeighbridgeTrip, error) {
	args := m.Called(ctx, tripNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeighbridgeTrip), args.Error(1)
}

func (m *MockTripRepository) ListActive(ctx context.Context, limit, offset int) ([]*domain.WeighbridgeTrip, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WeighbridgeTrip), args.Error(1)
}

func (m *MockTripRepository) List(ctx context.Context, limit, offset int) ([]*domain.WeighbridgeTrip, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WeighbridgeTrip), args.Error(1)
}

func (m *MockTripRepository) FindOpenByVehicle(ctx context.Context, vehicleID uuid.UUID) (*domain.WeighbridgeTrip, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeighbridgeTrip), args.Error(1)
}

func (m *MockTripRepository) GetEvents(ctx context.Context, tripID uuid.UUID) ([]*domain.TripEvent, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TripEvent), args.Error(1)
}

func (m *MockTripRepository) NextTripNo(ctx context.Context, year int) (string, error) {
	args := m.Called(ctx, year)
	return args.String(0), args.Error(1)
}

// MockVehicleRepository - mock реализация repository.VehicleRepository
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetByVehicleNo(ctx context.Context, vehicleNo string) (*domain.Vehicle, error) {
	args := m.Called(ctx, vehicleNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetByTransporterID(ctx context.Context, transporterID uuid.UUID) ([]*domain.Vehicle, error) {
	args := m.Called(ctx, transporterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVehicleRepository) List(ctx context.Context, limit, offset int) ([]*domain.Vehicle, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vehicle), args.Error(1)
}

// MockTransporterRepository - mock реализация repository.TransporterRepository
type MockTransporterRepository struct {
	mock.Mock
}

func (m *MockTransporterRepository) Create(ctx context.Context, transporter *domain.Transporter) error {
	args := m.Called(ctx, transporter)
	return args.Error(0)
}

func (m *MockTransporterRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transporter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transporter), args.Error(1)
}

func (m *MockTransporterRepository) Update(ctx context.Context, transporter *domain.Transporter) error {
	args := m.Called(ctx, transporter)
	return args.Error(0)
}

func (m *MockTransporterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTransporterRepository) List(ctx context.Context, limit, offset int) ([]*domain.Transporter, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transporter), args.Error(1)
}
