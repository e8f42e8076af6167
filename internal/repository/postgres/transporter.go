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

type transporterRepository struct {
	db *pgxpool.Pool
}

func NewTransporterRepository(db *pgxpool.Pool) repository.TransporterRepository {
	return &transporterRepository{db: db}
}

func (r *transporterRepository) Create(ctx context.Context, transporter *domain.Transporter) error {
	query := `
		INSERT INTO transporters (id, name, gst_no, contact_person, phone, address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	transporter.ID = uuid.New()
	transporter.CreatedAt = time.Now()
	transporter.UpdatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		transporter.ID,
		transporter.Name,
		transporter.GSTNo,
		transporter.ContactPerson,
		transporter.Phone,
		transporter.Address,
		transporter.IsActive,
		transporter.CreatedAt,
		transporter.UpdatedAt,
	)

	return err
}

func (r *transporterRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transporter, error) {
	query := `
		SELECT id, name, gst_no, contact_person, phone, address, is_active, created_at, updated_at
		FROM transporters
		WHERE id = $1
	`

	transporter := &domain.Transporter{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&transporter.ID,
		&transporter.Name,
		&transporter.GSTNo,
		&transporter.ContactPerson,
		&transporter.Phone,
		&transporter.Address,
		&transporter.IsActive,
		&transporter.CreatedAt,
		&transporter.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransporterNotFound
		}
		return nil, err
	}

	return transporter, nil
}

func (r *transporterRepository) Update(ctx context.Context, transporter *domain.Transporter) error {
	query := `
		UPDATE transporters
		SET name = $2, gst_no = $3, contact_person = $4, phone = $5, address = $6, is_active = $7, updated_at = $8
		WHERE id = $1
	`

	transporter.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		transporter.ID,
		transporter.Name,
		transporter.GSTNo,
		transporter.ContactPerson,
		transporter.Phone,
		transporter.Address,
		transporter.IsActive,
		transporter.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTransporterNotFound
	}

	return nil
}

func (r *transporterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Мягкое удаление - устанавливаем is_active = false
	query := `
		UPDATE transporters
		SET is_active = false, updated_at = $2
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, time.Now())
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTransporterNotFound
	}

	return nil
}

func (r *transporterRepository) List(ctx context.Context, limit, offset int) ([]*domain.Transporter, error) {
	query := `
		SELECT id, name, gst_no, contact_person, phone, address, is_active, created_at, updated_at
		FROM transporters
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transporters []*domain.Transporter
	for rows.Next() {
		transporter := &domain.Transporter{}
		err := rows.Scan(
			&transporter.ID,
			&transporter.Name,
			&transporter.GSTNo,
			&transporter.ContactPerson,
			&transporter.Phone,
			&transporter.Address,
			&transporter.IsActive,
			&transporter.CreatedAt,
			&transporter.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		transporters = append(transporters, transporter)
	}

	return transporters, rows.Err()
}
