package cached

import (
	"context"
	"encoding/json"
	"time"

	"github.com/frontandrew/weighbridge/internal/domain"
	"github.com/frontandrew/weighbridge/internal/pkg/redis"
	"github.com/frontandrew/weighbridge/internal/repository"
	"github.com/google/uuid"
)

const (
	vehicleCachePrefix = "vehicle:no:"
	vehicleCacheTTL    = 1 * time.Hour
)

// VehicleRepository добавляет кэширование справочника транспортных средств
// Горячий путь - поиск по регистрационному номеру при оформлении поездки на КПП
type VehicleRepository struct {
	repo  repository.VehicleRepository
	cache *redis.Client
}

// NewVehicleRepository создает новый кэшируемый vehicle repository
func NewVehicleRepository(repo repository.VehicleRepository, cache *redis.Client) *VehicleRepository {
	return &VehicleRepository{
		repo:  repo,
		cache: cache,
	}
}

// GetByVehicleNo возвращает транспортное средство по номеру (с кэшированием)
func (r *VehicleRepository) GetByVehicleNo(ctx context.Context, vehicleNo string) (*domain.Vehicle, error) {
	cacheKey := vehicleCachePrefix + domain.NormalizeVehicleNo(vehicleNo)

	// 1. Проверяем кэш; любая ошибка кэша (включая redis.Nil) - это промах
	cachedRaw, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		vehicle := &domain.Vehicle{}
		if jsonErr := json.Unmarshal([]byte(cachedRaw), vehicle); jsonErr == nil {
			return vehicle, nil
		}
		// Нечитаемое значение в кэше - выбрасываем и идем в БД
		_ = r.cache.Del(ctx, cacheKey)
	}

	// 2. Cache miss - идем в БД
	vehicle, err := r.repo.GetByVehicleNo(ctx, vehicleNo)
	if err != nil {
		return nil, err
	}

	// 3. Сохраняем результат в кэш (ошибку записи игнорируем - не критично)
	if raw, jsonErr := json.Marshal(vehicle); jsonErr == nil {
		_ = r.cache.Set(ctx, cacheKey, string(raw), vehicleCacheTTL)
	}

	return vehicle, nil
}

// Create создает транспортное средство
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	if err := r.repo.Create(ctx, vehicle); err != nil {
		return err
	}

	// Инвалидируем кэш для этого номера
	_ = r.cache.Del(ctx, vehicleCachePrefix+vehicle.VehicleNo)

	return nil
}

// Update обновляет транспортное средство и инвалидирует кэш
func (r *VehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	if err := r.repo.Update(ctx, vehicle); err != nil {
		return err
	}

	_ = r.cache.Del(ctx, vehicleCachePrefix+vehicle.VehicleNo)

	return nil
}

// Delete мягко удаляет транспортное средство и инвалидирует кэш
func (r *VehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Номер нужен для ключа кэша, читаем запись до удаления
	vehicle, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = r.cache.Del(ctx, vehicleCachePrefix+vehicle.VehicleNo)

	return nil
}

// GetByID возвращает транспортное средство по ID
func (r *VehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	// По ID не кэшируем - горячий путь ищет по номеру
	return r.repo.GetByID(ctx, id)
}

// GetByTransporterID возвращает все машины перевозчика
func (r *VehicleRepository) GetByTransporterID(ctx context.Context, transporterID uuid.UUID) ([]*domain.Vehicle, error) {
	return r.repo.GetByTransporterID(ctx, transporterID)
}

// List возвращает список транспортных средств
func (r *VehicleRepository) List(ctx context.Context, limit, offset int) ([]*domain.Vehicle, error) {
	// Списки не кэшируем - используются только в админке
	return r.repo.List(ctx, limit, offset)
}
