package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/srgjo27/rental_booking/internal/core/domain"
)

// reservations_no_overlap rejects two blocking rows for one vehicle whose
// windows intersect, even if a writer skips WithVehicleLock.
const schema = `
CREATE EXTENSION IF NOT EXISTS btree_gist;

CREATE TABLE IF NOT EXISTS vehicles (
	id               UUID PRIMARY KEY,
	name             TEXT   NOT NULL,
	rate_per_hour    BIGINT NOT NULL CHECK (rate_per_hour >= 0),
	rate_per_day     BIGINT NOT NULL CHECK (rate_per_day >= 0),
	security_deposit BIGINT NOT NULL DEFAULT 0 CHECK (security_deposit >= 0)
);

CREATE TABLE IF NOT EXISTS reservations (
	id               BIGSERIAL PRIMARY KEY,
	vehicle_id       UUID        NOT NULL REFERENCES vehicles (id),
	customer_id      UUID,
	customer_name    TEXT        NOT NULL DEFAULT '',
	customer_email   TEXT        NOT NULL DEFAULT '',
	customer_phone   TEXT        NOT NULL DEFAULT '',
	start_time       TIMESTAMPTZ NOT NULL,
	end_time         TIMESTAMPTZ NOT NULL,
	status           TEXT        NOT NULL CHECK (status IN ('PENDING', 'PAID', 'CANCELLED')),
	duration_hours   INTEGER     NOT NULL,
	duration_days    INTEGER     NOT NULL,
	total_amount     BIGINT      NOT NULL,
	security_deposit BIGINT      NOT NULL DEFAULT 0,
	created_at       TIMESTAMPTZ NOT NULL,
	paid_at          TIMESTAMPTZ,
	cancelled_at     TIMESTAMPTZ,
	CONSTRAINT reservations_window_check CHECK (start_time < end_time),
	CONSTRAINT reservations_no_overlap EXCLUDE USING gist (
		vehicle_id WITH =,
		tstzrange(start_time, end_time, '[)') WITH &&
	) WHERE (status IN ('PENDING', 'PAID'))
);

CREATE INDEX IF NOT EXISTS reservations_status_created_idx ON reservations (status, created_at);

CREATE TABLE IF NOT EXISTS invoices (
	booking_id     BIGINT      PRIMARY KEY REFERENCES reservations (id),
	invoice_number TEXT        NOT NULL UNIQUE,
	amount         BIGINT      NOT NULL,
	generated_at   TIMESTAMPTZ NOT NULL
);
`

func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

const (
	codeUniqueViolation    = "23505"
	codeExclusionViolation = "23P01"
)

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if pqCode(err) == codeExclusionViolation {
		return fmt.Errorf("%w: %v", domain.ErrSlotTaken, err)
	}
	return err
}
