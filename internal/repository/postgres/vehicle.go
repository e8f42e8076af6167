package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frontandrew/weighbridge/internal/domain"
	"github.com/frontandrew/weighbridge/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type vehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, vehicle_no, vehicle_type, capacity_mt, transporter_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	vehicle.ID = uuid.New()
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	// Нормализуем номер перед сохранением
	vehicle.VehicleNo = domain.NormalizeVehicleNo(vehicle.VehicleNo)

	_, err := r.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.VehicleNo,
		vehicle.VehicleType,
		vehicle.CapacityMT,
		vehicle.TransporterID,
		vehicle.IsActive,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)

	return err
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	query := `
		SELECT id, vehicle_no, vehicle_type, capacity_mt, transporter_id, is_active, created_at, updated_at
		FROM vehicles
		WHERE id = $1
	`

	vehicle := &domain.Vehicle{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&vehicle.ID,
		&vehicle.VehicleNo,
		&vehicle.VehicleType,
		&vehicle.CapacityMT,
		&vehicle.TransporterID,
		&vehicle.IsActive,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}

	return vehicle, nil
}

func (r *vehicleRepository) GetByVehicleNo(ctx context.Context, vehicleNo string) (*domain.Vehicle, error) {
	query := `
		SELECT id, vehicle_no, vehicle_type, capacity_mt, transporter_id, is_active, created_at, updated_at
		FROM vehicles
		WHERE vehicle_no = $1
	`

	// Нормализуем номер перед поиском
	normalized := domain.NormalizeVehicleNo(vehicleNo)

	vehicle := &domain.Vehicle{}
	err := r.db.QueryRow(ctx, query, normalized).Scan(
		&vehicle.ID,
		&vehicle.VehicleNo,
		&vehicle.VehicleType,
		&vehicle.CapacityMT,
		&vehicle.TransporterID,
		&vehicle.IsActive,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}

	return vehicle, nil
}

func (r *vehicleRepository) GetByTransporterID(ctx context.Context, transporterID uuid.UUID) ([]*domain.Vehicle, error) {
	query := `
		SELECT id, vehicle_no, vehicle_type, capacity_mt, transporter_id, is_active, created_at, updated_at
		FROM vehicles
		WHERE transporter_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, transporterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanVehicles(rows)
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET vehicle_no = $2, vehicle_type = $3, capacity_mt = $4, transporter_id = $5, is_active = $6, updated_at = $7
		WHERE id = $1
	`

	vehicle.UpdatedAt = time.Now()
	vehicle.VehicleNo = domain.NormalizeVehicleNo(vehicle.VehicleNo)

	result, err := r.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.VehicleNo,
		vehicle.VehicleType,
		vehicle.CapacityMT,
		vehicle.TransporterID,
		vehicle.IsActive,
		vehicle.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrVehicleNotFound
	}

	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Мягкое удаление - устанавливаем is_active = false
	query := `
		UPDATE vehicles
		SET is_active = false, updated_at = $2
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, time.Now())
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrVehicleNotFound
	}

	return nil
}

func (r *vehicleRepository) List(ctx context.Context, limit, offset int) ([]*domain.Vehicle, error) {
	query := `
		SELECT id, vehicle_no, vehicle_type, capacity_mt, transporter_id, is_active, created_at, updated_at
		FROM vehicles
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanVehicles(rows)
}

func scanVehicles(rows pgx.Rows) ([]*domain.Vehicle, error) {
	var vehicles []*domain.Vehicle
	for rows.Next() {
		vehicle := &domain.Vehicle{}
		err := rows.Scan(
			&vehicle.ID,
			&vehicle.VehicleNo,
			&vehicle.VehicleType,
			&vehicle.CapacityMT,
			&vehicle.TransporterID,
			&vehicle.IsActive,
			&vehicle.CreatedAt,
			&vehicle.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, rows.Err()
}
