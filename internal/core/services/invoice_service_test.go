package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/rental_booking/internal/core/domain"
	"github.com/srgjo27/rental_booking/internal/core/ports/mocks"
	"github.com/srgjo27/rental_booking/internal/core/services"
)

func paidBooking(t *testing.T, f *fixture) *domain.Reservation {
	t.Helper()
	f.expectEvents(domain.EventBookingCreated).Once()
	f.expectEvents(domain.EventPaymentConfirmed).Once()

	ctx := context.Background()
	res, err := f.bookings.RequestBooking(ctx, f.request("2025-06-01T10:00", "2025-06-02T16:00"))
	require.NoError(t, err)
	res, err = f.bookings.ConfirmPayment(ctx, res.ID)
	require.NoError(t, err)
	return res
}

func TestIssueInvoice_Success(t *testing.T) {
	f := newFixture(t, services.BookingConfig{})
	res := paidBooking(t, f)

	inv, err := f.billing.IssueInvoice(context.Background(), res.ID)

	require.NoError(t, err)
	assert.Equal(t, "INV-2025-000001", inv.InvoiceNumber)
	assert.Equal(t, res.ID, inv.BookingID)
	assert.Equal(t, domain.Money(12000), inv.Amount)
	assert.Equal(t, f.clock.Now(), inv.GeneratedAt)
}

func TestIssueInvoice_ConcurrentCallersShareOneNumber(t *testing.T) {
	f := newFixture(t, services.BookingConfig{})
	res := paidBooking(t, f)

	const n = 32
	numbers := make([]string, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			inv, err := f.billing.IssueInvoice(context.Background(), res.ID)
			errs[i] = err
			if err == nil {
				numbers[i] = inv.InvoiceNumber
			}
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, numbers[0], numbers[i])
	}
	assert.Equal(t, 1, f.invoices.Len())
}

func TestIssueInvoice_Fail_NotPaid(t *testing.T) {
	f := newFixture(t, services.BookingConfig{})
	f.expectEvents(domain.EventBookingCreated).Once()
	ctx := context.Background()

	res, err := f.bookings.RequestBooking(ctx, f.request("2025-06-01T10:00", "2025-06-01T12:00"))
	require.NoError(t, err)

	_, err = f.billing.IssueInvoice(ctx, res.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Zero(t, f.invoices.Len())

	_, err = f.billing.IssueInvoice(ctx, 777)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIssueInvoice_ReturnsWinnerWhenInsertLosesRace(t *testing.T) {
	reservations := mocks.NewReservationRepository(t)
	invoices := mocks.NewInvoiceRepository(t)
	clock := mocks.NewClock(t)
	ctx := context.Background()

	booking := &domain.Reservation{ID: 7, Status: domain.ReservationPaid, TotalAmount: 5000}
	winner := &domain.Invoice{BookingID: 7, InvoiceNumber: "INV-2025-000007", Amount: 5000}

	clock.On("Now").Return(at("2026-01-01T00:00"))
	invoices.On("FindByBookingID", mock.Anything, int64(7)).Return(nil, domain.ErrNotFound)
	reservations.On("GetByID", mock.Anything, int64(7)).Return(booking, nil)
	invoices.On("InsertIfAbsent", mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.InvoiceNumber == "INV-2026-000007"
	})).Return(winner, nil)

	svc := services.NewInvoiceService(reservations, invoices, clock)
	inv, err := svc.IssueInvoice(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, "INV-2025-000007", inv.InvoiceNumber)
}

func TestIssueInvoice_Fail_StorageFailure(t *testing.T) {
	reservations := mocks.NewReservationRepository(t)
	invoices := mocks.NewInvoiceRepository(t)
	clock := mocks.NewClock(t)
	ctx := context.Background()

	invoices.On("FindByBookingID", mock.Anything, int64(3)).Return(nil, errors.New("too many connections"))

	svc := services.NewInvoiceService(reservations, invoices, clock)
	_, err := svc.IssueInvoice(ctx, 3)

	assert.ErrorIs(t, err, domain.ErrStorageFailure)
}
