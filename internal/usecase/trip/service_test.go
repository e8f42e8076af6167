package trip

import (
	"context"
	"testing"
	"time"

	"github.com/frontandrew/weighbridge/internal/domain"
	"github.com/frontandrew/weighbridge/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, *MockTripRepository, *MockVehicleRepository, *MockTransporterRepository) {
	tripRepo := new(MockTripRepository)
	vehicleRepo := new(MockVehicleRepository)
	transporterRepo := new(MockTransporterRepository)
	svc := NewService(tripRepo, vehicleRepo, transporterRepo, logger.NewNoop())
	return svc, tripRepo, vehicleRepo, transporterRepo
}

func activeVehicle(transporterID uuid.UUID) *domain.Vehicle {
	return &domain.Vehicle{
		ID:            uuid.New(),
		VehicleNo:     "KA01AB1234",
		VehicleType:   domain.VehicleTypeTruck,
		CapacityMT:    25,
		TransporterID: transporterID,
		IsActive:      true,
	}
}

func activeTransporter() *domain.Transporter {
	return &domain.Transporter{
		ID:       uuid.New(),
		Name:     "Shree Logistics",
		IsActive: true,
	}
}

func openedTrip(t *testing.T) *domain.WeighbridgeTrip {
	t.Helper()
	transporter := activeTransporter()
	trip, err := domain.NewTrip("TRIP-2026-042", activeVehicle(transporter.ID), transporter, domain.MovementInward, domain.DocumentCane, "PO-4521")
	require.NoError(t, err)
	return trip
}

func TestService_OpenTrip(t *testing.T) {
	actorID := uuid.New()
	transporter := activeTransporter()
	vehicle := activeVehicle(transporter.ID)

	t.Run("успешное открытие поездки", func(t *testing.T) {
		svc, tripRepo, vehicleRepo, transporterRepo := newTestService()

		vehicleRepo.On("GetByID", mock.Anything, vehicle.ID).Return(vehicle, nil)
		transporterRepo.On("GetByID", mock.Anything, transporter.ID).Return(transporter, nil)
		tripRepo.On("NextTripNo", mock.Anything, time.Now().Year()).Return("TRIP-2026-042", nil)
		tripRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.WeighbridgeTrip"), mock.AnythingOfType("*domain.TripEvent")).
			Run(func(args mock.Arguments) {
				trip := args.Get(1).(*domain.WeighbridgeTrip)
				event := args.Get(2).(*domain.TripEvent)
				assert.Equal(t, domain.TripStatusGateIn, trip.Status)
				assert.Equal(t, 1, event.Seq)
				assert.Equal(t, domain.TripOpOpen, event.Operation)
				assert.Equal(t, actorID, *event.ActorID)
			}).
			Return(nil)

		trip, err := svc.OpenTrip(context.Background(), &OpenTripRequest{
			VehicleID:         vehicle.ID,
			MovementType:      domain.MovementInward,
			DocumentType:      domain.DocumentCane,
			LinkedDocumentRef: "PO-4521",
		}, actorID)

		require.NoError(t, err)
		assert.Equal(t, "TRIP-2026-042", trip.TripNo)
		// Перевозчик не передан в запросе - наследуется от машины
		assert.Equal(t, transporter.ID, trip.TransporterID)

		tripRepo.AssertExpectations(t)
		vehicleRepo.AssertExpectations(t)
		transporterRepo.AssertExpectations(t)
	})

	t.Run("машина не найдена", func(t *testing.T) {
		svc, _, vehicleRepo, _ := newTestService()

		vehicleRepo.On("GetByID", mock.Anything, vehicle.ID).Return(nil, domain.ErrVehicleNotFound)

		_, err := svc.OpenTrip(context.Background(), &OpenTripRequest{
			VehicleID:         vehicle.ID,
			MovementType:      domain.MovementInward,
			DocumentType:      domain.DocumentCane,
			LinkedDocumentRef: "PO-4521",
		}, actorID)

		assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
	})

	t.Run("машина выведена из парка", func(t *testing.T) {
		svc, _, vehicleRepo, _ := newTestService()

		inactive := activeVehicle(transporter.ID)
		inactive.IsActive = false
		vehicleRepo.On("GetByID", mock.Anything, inactive.ID).Return(inactive, nil)

		_, err := svc.OpenTrip(context.Background(), &OpenTripRequest{
			VehicleID:         inactive.ID,
			MovementType:      domain.MovementInward,
			DocumentType:      domain.DocumentCane,
			LinkedDocumentRef: "PO-4521",
		}, actorID)

		assert.ErrorIs(t, err, domain.ErrVehicleInactive)
	})

	t.Run("перевозчик неактивен", func(t *testing.T) {
		svc, _, vehicleRepo, transporterRepo := newTestService()

		inactive := activeTransporter()
		inactive.IsActive = false
		v := activeVehicle(inactive.ID)
		vehicleRepo.On("GetByID", mock.Anything, v.ID).Return(v, nil)
		transporterRepo.On("GetByID", mock.Anything, inactive.ID).Return(inactive, nil)

		_, err := svc.OpenTrip(context.Background(), &OpenTripRequest{
			VehicleID:         v.ID,
			MovementType:      domain.MovementInward,
			DocumentType:      domain.DocumentCane,
			LinkedDocumentRef: "PO-4521",
		}, actorID)

		assert.ErrorIs(t, err, domain.ErrTransporterInactive)
	})

	t.Run("отсутствует документ-основание", func(t *testing.T) {
		svc, tripRepo, vehicleRepo, transporterRepo := newTestService()

		vehicleRepo.On("GetByID", mock.Anything, vehicle.ID).Return(vehicle, nil)
		transporterRepo.On("GetByID", mock.Anything, transporter.ID).Return(transporter, nil)
		tripRepo.On("NextTripNo", mock.Anything, mock.AnythingOfType("int")).Return("TRIP-2026-043", nil)

		_, err := svc.OpenTrip(context.Background(), &OpenTripRequest{
			VehicleID:         vehicle.ID,
			MovementType:      domain.MovementInward,
			DocumentType:      domain.DocumentCane,
			LinkedDocumentRef: "",
		}, actorID)

		assert.ErrorIs(t, err, domain.ErrMissingDocumentRef)
		tripRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_RecordFirstWeighment(t *testing.T) {
	actorID := uuid.New()

	t.Run("успешное первое взвешивание", func(t *testing.T) {
		svc, tripRepo, _, _ := newTestService()

		trip := openedTrip(t)
		tripRepo.On("GetByID", mock.Anything, trip.ID).Return(trip, nil)
		tripRepo.On("Update", mock.Anything, trip, mock.AnythingOfType("*domain.TripEvent")).
			Run(func(args mock.Arguments) {
				event := args.Get(2).(*domain.TripEvent)
				assert.Equal(t, domain.TripOpWeighIn, event.Operation)
				assert.Equal(t, 2, event.Seq)
				assert.Equal(t, domain.TripStatusYard, event.Payload.Status)
			}).
			Return(nil)

		got, err := svc.RecordFirstWeighment(context.Background(), trip.ID, 32.5, actorID)

		require.NoError(t, err)
		assert.Equal(t, domain.TripStatusYard, got.Status)
		require.NotNil(t, got.GrossWeight)
		assert.Equal(t, 32.5, *got.GrossWeight)

		tripRepo.AssertExpectations(t)
	})

	t.Run("поездка не найдена", func(t *testing.T) {
		svc, tripRepo, _, _ := newTestService()

		id := uuid.New()
		tripRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrTripNotFound)

		_, err := svc.RecordFirstWeighment(context.Background(), id, 32.5, actorID)
		assert.ErrorIs(t, err, domain.ErrTripNotFound)
	})

	t.Run("недопустимое состояние не сохраняется", func(t *testing.T) {
		svc, tripRepo, _, _ := newTestService()

		trip := openedTrip(t)
		require.NoError(t, trip.ApplyFirstWeighment(30.0, time.Now()))
		tripRepo.On("GetByID", mock.Anything, trip.ID).Return(trip, nil)

		_, err := svc.RecordFirstWeighment(context.Background(), trip.ID, 31.0, actorID)

		assert.ErrorIs(t, err, domain.ErrInvalidTripState)
		tripRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("конкурентная модификация", func(t *testing.T) {
		svc, tripRepo, _, _ := newTestService()

		trip := openedTrip(t)
		tripRepo.On("GetByID", mock.Anything, trip.ID).Return(trip, nil)
		tripRepo.On("Update", mock.Anything, mock.Anything, mock.Anything).
			Return(domain.ErrConcurrentModification)

		_, err := svc.RecordFirstWeighment(context.Background(), trip.ID, 32.5, actorID)
		assert.ErrorIs(t, err, domain.ErrConcurrentModification)
	})
}

func TestService_SecondWeighmentAndGateOut(t *testing.T) {
	actorID := uuid.New()

	t.Run("полный цикл входящей поездки", func(t *testing.T) {
		svc, tripRepo, _, _ := newTestService()

		trip := openedTrip(t)
		require.NoError(t, trip.ApplyFirstWeighment(32.5, time.Now()))

		tripRepo.On("GetByID", mock.Anything, trip.ID).Return(trip, nil)
		tripRepo.On("Update", mock.Anything, trip, mock.AnythingOfType("*domain.TripEvent")).Return(nil)

		got, err := svc.RecordSecondWeighment(context.Background(), trip.ID, 12.0, actorID)
		require.NoError(t, err)
		require.NotNil(t, got.NetWeight)
		assert.InDelta(t, 20.5, *got.NetWeight, 1e-9)

		got, err = svc.GateOut(context.Background(), trip.ID, actorID)
		require.NoError(t, err)
		assert.Equal(t, domain.TripStatusGateOut, got.Status)
	})

	t.Run("отрицательное нетто отклоняется", func(t *testing.T) {
		svc, tripRepo, _, _ := newTestService()

		trip := openedTrip(t)
		require.NoError(t, trip.ApplyFirstWeighment(20.0, time.Now()))
		tripRepo.On("GetByID", mock.Anything, trip.ID).Return(trip, nil)

		_, err := svc.RecordSecondWeighment(context.Background(), trip.ID, 25.0, actorID)

		assert.ErrorIs(t, err, domain.ErrNegativeNetWeight)
		tripRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("гейт-аут до второго взвешивания запрещен", func(t *testing.T) {
		svc, tripRepo, _, _ := newTestService()

		trip := openedTrip(t)
		tripRepo.On("GetByID", mock.Anything, trip.ID).Return(trip, nil)

		_, err := svc.GateOut(context.Background(), trip.ID, actorID)
		assert.ErrorIs(t, err, domain.ErrInvalidTripState)
	})
}

func TestService_CancelTrip(t *testing.T) {
	actorID := uuid.New()

	t.Run("успешная отмена", func(t *testing.T) {
		svc, tripRepo, _, _ := newTestService()

		trip := openedTrip(t)
		tripRepo.On("GetByID", mock.Anything, trip.ID).Return(trip, nil)
		tripRepo.On("Update", mock.Anything, trip, mock.AnythingOfType("*domain.TripEvent")).
			Run(func(args mock.Arguments) {
				event := args.Get(2).(*domain.TripEvent)
				assert.Equal(t, domain.TripOpCancel, event.Operation)
				assert.Equal(t, "неисправны весы", event.Payload.CancelReason)
			}).
			Return(nil)

		got, err := svc.CancelTrip(context.Background(), trip.ID, "неисправны весы", actorID)

		require.NoError(t, err)
		assert.Equal(t, domain.TripStatusCancelled, got.Status)
	})

	t.Run("отмена завершенной поездки запрещена", func(t *testing.T) {
		svc, tripRepo, _, _ := newTestService()

		trip := openedTrip(t)
		require.NoError(t, trip.ApplyCancel("первая отмена", time.Now()))
		tripRepo.On("GetByID", mock.Anything, trip.ID).Return(trip, nil)

		_, err := svc.CancelTrip(context.Background(), trip.ID, "вторая отмена", actorID)
		assert.ErrorIs(t, err, domain.ErrTripTerminal)
	})
}

func TestService_GetTrip(t *testing.T) {
	t.Run("поездка с журналом аудита", func(t *testing.T) {
		svc, tripRepo, _, _ := newTestService()

		trip := openedTrip(t)
		events := []*domain.TripEvent{domain.NewTripEvent(trip, domain.TripOpOpen, nil)}
		tripRepo.On("GetByID", mock.Anything, trip.ID).Return(trip, nil)
		tripRepo.On("GetEvents", mock.Anything, trip.ID).Return(events, nil)

		got, err := svc.GetTrip(context.Background(), trip.ID)

		require.NoError(t, err)
		assert.Len(t, got.History, 1)
	})

	t.Run("поездка не найдена", func(t *testing.T) {
		svc, tripRepo, _, _ := newTestService()

		id := uuid.New()
		tripRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrTripNotFound)

		_, err := svc.GetTrip(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrTripNotFound)
	})
}

func TestService_FindOpenTripByVehicleNo(t *testing.T) {
	t.Run("успешный поиск", func(t *testing.T) {
		svc, tripRepo, vehicleRepo, _ := newTestService()

		transporter := activeTransporter()
		vehicle := activeVehicle(transporter.ID)
		trip := openedTrip(t)

		vehicleRepo.On("GetByVehicleNo", mock.Anything, "KA01AB1234").Return(vehicle, nil)
		tripRepo.On("FindOpenByVehicle", mock.Anything, vehicle.ID).Return(trip, nil)

		got, err := svc.FindOpenTripByVehicleNo(context.Background(), "KA01AB1234")

		require.NoError(t, err)
		assert.Equal(t, trip.ID, got.ID)
	})

	t.Run("машина не найдена", func(t *testing.T) {
		svc, _, vehicleRepo, _ := newTestService()

		vehicleRepo.On("GetByVehicleNo", mock.Anything, "XX00XX0000").Return(nil, domain.ErrVehicleNotFound)

		_, err := svc.FindOpenTripByVehicleNo(context.Background(), "XX00XX0000")
		assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
	})
}
