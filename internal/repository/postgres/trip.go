package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/frontandrew/weighbridge/internal/domain"
	"github.com/frontandrew/weighbridge/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type tripRepository struct {
	db *pgxpool.Pool
}

func NewTripRepository(db *pgxpool.Pool) repository.TripRepository {
	return &tripRepository{db: db}
}

const tripColumns = `id, trip_no, vehicle_id, transporter_id, movement_type, document_type,
	       linked_document_ref, status, gross_weight, tare_weight, net_weight,
	       gate_in_time, weigh_in_time, weigh_out_time, gate_out_time, remarks, cancel_reason, version`

// Create сохраняет поездку и ее первое событие аудита в одной транзакции
func (r *tripRepository) Create(ctx context.Context, trip *domain.WeighbridgeTrip, event *domain.TripEvent) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO trips (id, trip_no, vehicle_id, transporter_id, movement_type, document_type,
		                   linked_document_ref, status, gross_weight, tare_weight, net_weight,
		                   gate_in_time, weigh_in_time, weigh_out_time, gate_out_time, remarks, cancel_reason, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err = tx.Exec(ctx, query,
		trip.ID,
		trip.TripNo,
		trip.VehicleID,
		trip.TransporterID,
		trip.MovementType,
		trip.DocumentType,
		trip.LinkedDocumentRef,
		trip.Status,
		trip.GrossWeight,
		trip.TareWeight,
		trip.NetWeight,
		trip.GateInTime,
		trip.WeighInTime,
		trip.WeighOutTime,
		trip.GateOutTime,
		trip.Remarks,
		trip.CancelReason,
		trip.Version,
	)
	if err != nil {
		return err
	}

	if err := insertTripEvent(ctx, tx, event); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Update сохраняет поездку с проверкой версии и дописывает событие аудита
// Проигравший из двух конкурентных писателей не находит строку со старой
// версией и получает ErrConcurrentModification
func (r *tripRepository) Update(ctx context.Context, trip *domain.WeighbridgeTrip, event *domain.TripEvent) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE trips
		SET status = $3, gross_weight = $4, tare_weight = $5, net_weight = $6,
		    weigh_in_time = $7, weigh_out_time = $8, gate_out_time = $9,
		    remarks = $10, cancel_reason = $11, version = $12
		WHERE id = $1 AND version = $2
	`

	result, err := tx.Exec(ctx, query,
		trip.ID,
		trip.Version-1,
		trip.Status,
		trip.GrossWeight,
		trip.TareWeight,
		trip.NetWeight,
		trip.WeighInTime,
		trip.WeighOutTime,
		trip.GateOutTime,
		trip.Remarks,
		trip.CancelReason,
		trip.Version,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		// Либо поездки нет, либо писали против устаревшей версии
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM trips WHERE id = $1)`, trip.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrTripNotFound
		}
		return domain.ErrConcurrentModification
	}

	if err := insertTripEvent(ctx, tx, event); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertTripEvent(ctx context.Context, tx pgx.Tx, event *domain.TripEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal trip event payload: %w", err)
	}

	query := `
		INSERT INTO trip_events (id, trip_id, seq, operation, actor_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = tx.Exec(ctx, query,
		event.ID,
		event.TripID,
		event.Seq,
		event.Operation,
		event.ActorID,
		payload,
		event.CreatedAt,
	)
	return err
}

func (r *tripRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.WeighbridgeTrip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	trip, err := scanTrip(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTripNotFound
		}
		return nil, err
	}

	return trip, nil
}

func (r *tripRepository) GetByTripNo(ctx context.Context, tripNo string) (*domain.WeighbridgeTrip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE trip_no = $1`

	trip, err := scanTrip(r.db.QueryRow(ctx, query, tripNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTripNotFound
		}
		return nil, err
	}

	return trip, nil
}

func (r *tripRepository) ListActive(ctx context.Context, limit, offset int) ([]*domain.WeighbridgeTrip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE status NOT IN ('gate_out', 'cancelled')
		ORDER BY gate_in_time ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrips(rows)
}

func (r *tripRepository) List(ctx context.Context, limit, offset int) ([]*domain.WeighbridgeTrip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		ORDER BY gate_in_time DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrips(rows)
}

func (r *tripRepository) FindOpenByVehicle(ctx context.Context, vehicleID uuid.UUID) (*domain.WeighbridgeTrip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE vehicle_id = $1 AND status NOT IN ('gate_out', 'cancelled')
		ORDER BY gate_in_time DESC
		LIMIT 1
	`

	trip, err := scanTrip(r.db.QueryRow(ctx, query, vehicleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTripNotFound
		}
		return nil, err
	}

	return trip, nil
}

func (r *tripRepository) GetEvents(ctx context.Context, tripID uuid.UUID) ([]*domain.TripEvent, error) {
	query := `
		SELECT id, trip_id, seq, operation, actor_id, payload, created_at
		FROM trip_events
		WHERE trip_id = $1
		ORDER BY seq ASC
	`

	rows, err := r.db.Query(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.TripEvent
	for rows.Next() {
		event := &domain.TripEvent{}
		var payload []byte
		err := rows.Scan(
			&event.ID,
			&event.TripID,
			&event.Seq,
			&event.Operation,
			&event.ActorID,
			&payload,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &event.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal trip event payload: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// NextTripNo выдает следующий номер поездки из счетчика по годам
// Счетчик живет в БД, чтобы номера не дублировались между экземплярами сервиса
func (r *tripRepository) NextTripNo(ctx context.Context, year int) (string, error) {
	query := `
		INSERT INTO trip_counters (year, seq)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET seq = trip_counters.seq + 1
		RETURNING seq
	`

	var seq int
	if err := r.db.QueryRow(ctx, query, year).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to allocate trip number: %w", err)
	}

	return fmt.Sprintf("TRIP-%d-%03d", year, seq), nil
}

// rowScanner покрывает и pgx.Row, и pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*domain.WeighbridgeTrip, error) {
	trip := &domain.WeighbridgeTrip{}
	err := row.Scan(
		&trip.ID,
		&trip.TripNo,
		&trip.VehicleID,
		&trip.TransporterID,
		&trip.MovementType,
		&trip.DocumentType,
		&trip.LinkedDocumentRef,
		&trip.Status,
		&trip.GrossWeight,
		&trip.TareWeight,
		&trip.NetWeight,
		&trip.GateInTime,
		&trip.WeighInTime,
		&trip.WeighOutTime,
		&trip.GateOutTime,
		&trip.Remarks,
		&trip.CancelReason,
		&trip.Version,
	)
	if err != nil {
		return nil, err
	}
	return trip, nil
}

func scanTrips(rows pgx.Rows) ([]*domain.WeighbridgeTrip, error) {
	var trips []*domain.WeighbridgeTrip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}
