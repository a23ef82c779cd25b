package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/srgjo27/rental_booking/internal/core/domain"
	"github.com/srgjo27/rental_booking/internal/core/ports"
)

const reservationColumns = `id, vehicle_id, customer_id, customer_name, customer_email, customer_phone,
	start_time, end_time, status, duration_hours, duration_days, total_amount, security_deposit,
	created_at, paid_at, cancelled_at`

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

type ReservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// WithVehicleLock serialises admissions per vehicle with a transaction-scoped
// advisory lock, so fn's read and insert see no concurrent writer for the
// same vehicle.
func (r *ReservationRepository) WithVehicleLock(ctx context.Context, vehicleID uuid.UUID, fn func(ctx context.Context, tx ports.ReservationTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, vehicleID.String()); err != nil {
		return fmt.Errorf("failed to lock vehicle %s: %w", vehicleID, err)
	}

	if err := fn(ctx, &reservationTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", mapError(err))
	}

	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return getReservation(ctx, r.db, id)
}

func (r *ReservationRepository) FindOverlapping(ctx context.Context, vehicleID uuid.UUID, interval domain.TimeRange) ([]domain.Reservation, error) {
	return findOverlapping(ctx, r.db, vehicleID, interval)
}

func (r *ReservationRepository) FindBlockingByVehicles(ctx context.Context, vehicleIDs []uuid.UUID, interval domain.TimeRange) (map[uuid.UUID][]domain.TimeRange, error) {
	out := make(map[uuid.UUID][]domain.TimeRange, len(vehicleIDs))
	if len(vehicleIDs) == 0 {
		return out, nil
	}

	ids := make([]string, len(vehicleIDs))
	for i, id := range vehicleIDs {
		ids[i] = id.String()
	}

	query := `
	SELECT vehicle_id, start_time, end_time
	FROM reservations
	WHERE vehicle_id = ANY($1::uuid[])
		AND status IN ('PENDING', 'PAID')
		AND tstzrange(start_time, end_time, '[)') && tstzrange($2, $3, '[)')
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids), interval.Start, interval.End)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		var vid uuid.UUID
		var tr domain.TimeRange
		if err := rows.Scan(&vid, &tr.Start, &tr.End); err != nil {
			return nil, err
		}
		out[vid] = append(out[vid], tr)
	}

	return out, rows.Err()
}

func (r *ReservationRepository) TransitionStatus(ctx context.Context, id int64, from []domain.ReservationStatus, to domain.ReservationStatus, at time.Time) (*domain.Reservation, bool, error) {
	query := `
	UPDATE reservations
	SET status = $2::text,
		paid_at = CASE WHEN $2::text = 'PAID' THEN $3 ELSE paid_at END,
		cancelled_at = CASE WHEN $2::text = 'CANCELLED' THEN $3 ELSE cancelled_at END
	WHERE id = $1 AND status = ANY($4::text[])
	RETURNING ` + reservationColumns

	allowed := make([]string, len(from))
	for i, s := range from {
		allowed[i] = string(s)
	}

	res, err := scanReservation(r.db.QueryRowContext(ctx, query, id, string(to), at, pq.Array(allowed)))
	if err == nil {
		return res, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, mapError(err)
	}

	current, err := getReservation(ctx, r.db, id)
	if err != nil {
		return nil, false, err
	}

	return current, false, nil
}

func (r *ReservationRepository) GetStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]int64, error) {
	query := `
	SELECT id FROM reservations
	WHERE status = 'PENDING' AND created_at < $1
	ORDER BY id
	LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, createdBefore, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

type reservationTx struct {
	tx *sql.Tx
}

func (t *reservationTx) FindOverlapping(ctx context.Context, vehicleID uuid.UUID, interval domain.TimeRange) ([]domain.Reservation, error) {
	return findOverlapping(ctx, t.tx, vehicleID, interval)
}

func (t *reservationTx) Insert(ctx context.Context, res *domain.Reservation) error {
	query := `
	INSERT INTO reservations (vehicle_id, customer_id, customer_name, customer_email, customer_phone,
		start_time, end_time, status, duration_hours, duration_days, total_amount, security_deposit, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	RETURNING id
	`

	customerID := uuid.NullUUID{UUID: res.Customer.ID, Valid: res.Customer.ID != uuid.Nil}

	err := t.tx.QueryRowContext(ctx, query,
		res.VehicleID,
		customerID,
		res.Customer.Name,
		res.Customer.Email,
		res.Customer.Phone,
		res.Interval.Start,
		res.Interval.End,
		string(res.Status),
		res.DurationHours,
		res.DurationDays,
		int64(res.TotalAmount),
		int64(res.SecurityDeposit),
		res.CreatedAt,
	).Scan(&res.ID)
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", mapError(err))
	}

	return nil
}

func getReservation(ctx context.Context, q queryer, id int64) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	res, err := scanReservation(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return res, nil
}

// findOverlapping returns rows of every status; callers decide what blocks.
func findOverlapping(ctx context.Context, q queryer, vehicleID uuid.UUID, interval domain.TimeRange) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
	FROM reservations
	WHERE vehicle_id = $1
		AND tstzrange(start_time, end_time, '[)') && tstzrange($2, $3, '[)')
	ORDER BY start_time
	`

	rows, err := q.QueryContext(ctx, query, vehicleID, interval.Start, interval.End)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}

	return out, rows.Err()
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var customerID uuid.NullUUID
	var status string
	var paidAt, cancelledAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.VehicleID,
		&customerID,
		&res.Customer.Name,
		&res.Customer.Email,
		&res.Customer.Phone,
		&res.Interval.Start,
		&res.Interval.End,
		&status,
		&res.DurationHours,
		&res.DurationDays,
		&res.TotalAmount,
		&res.SecurityDeposit,
		&res.CreatedAt,
		&paidAt,
		&cancelledAt,
	)
	if err != nil {
		return nil, err
	}

	if customerID.Valid {
		res.Customer.ID = customerID.UUID
	}

	res.Status = domain.ReservationStatus(status)

	if paidAt.Valid {
		res.PaidAt = &paidAt.Time
	}

	if cancelledAt.Valid {
		res.CancelledAt = &cancelledAt.Time
	}

	return &res, nil
}
