package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/srgjo27/rental_booking/internal/core/domain"
)

type InvoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) FindByBookingID(ctx context.Context, bookingID int64) (*domain.Invoice, error) {
	query := `
	SELECT booking_id, invoice_number, amount, generated_at
	FROM invoices
	WHERE booking_id = $1
	`

	var inv domain.Invoice
	err := r.db.QueryRowContext(ctx, query, bookingID).Scan(
		&inv.BookingID,
		&inv.InvoiceNumber,
		&inv.Amount,
		&inv.GeneratedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &inv, nil
}

// InsertIfAbsent relies on the primary key on booking_id: a losing insert
// affects no row and the winner is read back.
func (r *InvoiceRepository) InsertIfAbsent(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error) {
	query := `
	INSERT INTO invoices (booking_id, invoice_number, amount, generated_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (booking_id) DO NOTHING
	RETURNING booking_id, invoice_number, amount, generated_at
	`

	var inv domain.Invoice
	err := r.db.QueryRowContext(ctx, query,
		invoice.BookingID,
		invoice.InvoiceNumber,
		int64(invoice.Amount),
		invoice.GeneratedAt,
	).Scan(&inv.BookingID, &inv.InvoiceNumber, &inv.Amount, &inv.GeneratedAt)

	switch {
	case err == nil:
		return &inv, nil
	case errors.Is(err, sql.ErrNoRows), pqCode(err) == codeUniqueViolation:
		winner, err := r.FindByBookingID(ctx, invoice.BookingID)
		if err != nil {
			return nil, fmt.Errorf("failed to read winning invoice for booking %d: %w", invoice.BookingID, err)
		}
		return winner, nil
	default:
		return nil, fmt.Errorf("failed to insert invoice: %w", err)
	}
}
