package services

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/srgjo27/rental_booking/internal/core/domain"
	"github.com/srgjo27/rental_booking/internal/core/ports"
)

type InvoiceService struct {
	reservations ports.ReservationRepository
	invoices     ports.InvoiceRepository
	clock        ports.Clock
}

func NewInvoiceService(reservations ports.ReservationRepository, invoices ports.InvoiceRepository, clock ports.Clock) *InvoiceService {
	return &InvoiceService{
		reservations: reservations,
		invoices:     invoices,
		clock:        clock,
	}
}

// IssueInvoice mints at most one invoice per paid booking. Concurrent callers
// racing on the insert all get the winner's invoice back.
func (s *InvoiceService) IssueInvoice(ctx context.Context, bookingID int64) (_ *domain.Invoice, err error) {
	ctx, span := tracer.Start(ctx, "InvoiceService.IssueInvoice")
	span.SetAttributes(attribute.Int64("booking.id", bookingID))
	defer func() { endSpan(span, err) }()

	existing, err := s.invoices.FindByBookingID(ctx, bookingID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, storageError("find invoice", err)
	}

	res, err := s.reservations.GetByID(ctx, bookingID)
	if err != nil {
		return nil, storageError("load booking", err)
	}

	if res.Status != domain.ReservationPaid {
		return nil, fmt.Errorf("%w: booking %d is %s, not %s", domain.ErrInvalidTransition, bookingID, res.Status, domain.ReservationPaid)
	}

	now := s.clock.Now()
	invoice, err := s.invoices.InsertIfAbsent(ctx, domain.Invoice{
		BookingID:     res.ID,
		InvoiceNumber: domain.InvoiceNumber(now.Year(), res.ID),
		Amount:        res.AmountDue(),
		GeneratedAt:   now,
	})
	if err != nil {
		return nil, storageError("insert invoice", err)
	}

	span.SetAttributes(attribute.String("invoice.number", invoice.InvoiceNumber))
	return invoice, nil
}
