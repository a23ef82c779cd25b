package memory

import (
	"context"
	"sync"

	"github.com/srgjo27/rental_booking/internal/core/domain"
)

type InvoiceRepository struct {
	mu        sync.Mutex
	byBooking map[int64]domain.Invoice
}

func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{byBooking: make(map[int64]domain.Invoice)}
}

func (r *InvoiceRepository) FindByBookingID(ctx context.Context, bookingID int64) (*domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inv, ok := r.byBooking[bookingID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &inv, nil
}

func (r *InvoiceRepository) InsertIfAbsent(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byBooking[invoice.BookingID]; ok {
		return &existing, nil
	}

	r.byBooking[invoice.BookingID] = invoice
	return &invoice, nil
}

func (r *InvoiceRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.byBooking)
}
