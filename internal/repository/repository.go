package repository

import (
	"context"

	"github.com/frontandrew/weighbridge/internal/domain"
	"github.com/google/uuid"
)

// TripRepository определяет методы для работы с поездками
// Каждая мутация записывает поездку вместе с событием аудита атомарно:
// состояние не считается подтвержденным, пока событие не сохранено
type TripRepository interface {
	// Create сохраняет новую поездку и ее первое событие аудита
	Create(ctx context.Context, trip *domain.WeighbridgeTrip, event *domain.TripEvent) error

	// Update сохраняет измененную поездку и событие аудита
	// Проверяет версию: если trip.Version-1 не совпадает с версией в БД,
	// возвращает domain.ErrConcurrentModification
	Update(ctx context.Context, trip *domain.WeighbridgeTrip, event *domain.TripEvent) error

	// GetByID возвращает поездку по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WeighbridgeTrip, error)

	// GetByTripNo возвращает поездку по человекочитаемому номеру
	GetByTripNo(ctx context.Context, tripNo string) (*domain.WeighbridgeTrip, error)

	// ListActive возвращает незавершенные поездки, отсортированные по времени въезда
	ListActive(ctx context.Context, limit, offset int) ([]*domain.WeighbridgeTrip, error)

	// List возвращает все поездки с пагинацией, свежие первыми
	List(ctx context.Context, limit, offset int) ([]*domain.WeighbridgeTrip, error)

	// FindOpenByVehicle возвращает самую свежую незавершенную поездку машины
	FindOpenByVehicle(ctx context.Context, vehicleID uuid.UUID) (*domain.WeighbridgeTrip, error)

	// GetEvents возвращает журнал аудита поездки в порядке возрастания seq
	GetEvents(ctx context.Context, tripID uuid.UUID) ([]*domain.TripEvent, error)

	// NextTripNo выдает следующий номер поездки формата TRIP-<год>-<порядковый>
	NextTripNo(ctx context.Context, year int) (string, error)
}

// VehicleRepository определяет методы для работы с транспортными средствами
type VehicleRepository interface {
	// Create создает новое транспортное средство
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID возвращает транспортное средство по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)

	// GetByVehicleNo возвращает транспортное средство по регистрационному номеру
	GetByVehicleNo(ctx context.Context, vehicleNo string) (*domain.Vehicle, error)

	// GetByTransporterID возвращает все машины перевозчика
	GetByTransporterID(ctx context.Context, transporterID uuid.UUID) ([]*domain.Vehicle, error)

	// Update обновляет данные транспортного средства
	Update(ctx context.Context, vehicle *domain.Vehicle) error

	// Delete удаляет транспортное средство (мягкое удаление - is_active = false)
	Delete(ctx context.Context, id uuid.UUID) error

	// List возвращает список транспортных средств с пагинацией
	List(ctx context.Context, limit, offset int) ([]*domain.Vehicle, error)
}

// TransporterRepository определяет методы для работы с перевозчиками
type TransporterRepository interface {
	// Create создает нового перевозчика
	Create(ctx context.Context, transporter *domain.Transporter) error

	// GetByID возвращает перевозчика по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transporter, error)

	// Update обновляет данные перевозчика
	Update(ctx context.Context, transporter *domain.Transporter) error

	// Delete удаляет перевозчика (мягкое удаление - is_active = false)
	Delete(ctx context.Context, id uuid.UUID) error

	// List возвращает список перевозчиков с пагинацией
	List(ctx context.Context, limit, offset int) ([]*domain.Transporter, error)
}

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	// Create создает нового пользователя
	Create(ctx context.Context, user *domain.User) error

	// GetByID возвращает пользователя по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail возвращает пользователя по email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update обновляет данные пользователя
	Update(ctx context.Context, user *domain.User) error

	// List возвращает список пользователей с пагинацией
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)

	// UpdateLastLogin обновляет время последнего входа
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

// RefreshTokenRepository определяет методы для работы с refresh токенами
type RefreshTokenRepository interface {
	// Create сохраняет новый refresh token
	Create(ctx context.Context, token *domain.RefreshToken) error

	// GetByTokenHash возвращает refresh token по хешу
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)

	// Revoke отзывает refresh token
	Revoke(ctx context.Context, tokenHash string) error

	// RevokeAllUserTokens отзывает все токены пользователя
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error

	// DeleteExpired удаляет истекшие токены
	DeleteExpired(ctx context.Context) error
}
