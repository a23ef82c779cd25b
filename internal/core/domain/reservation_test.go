package domain_test

import (
	"testing"

	"github.com/srgjo27/rental_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestReservationStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to domain.ReservationStatus
		want     bool
	}{
		{domain.ReservationPending, domain.ReservationPaid, true},
		{domain.ReservationPending, domain.ReservationCancelled, true},
		{domain.ReservationPaid, domain.ReservationCancelled, true},
		{domain.ReservationPaid, domain.ReservationPending, false},
		{domain.ReservationPaid, domain.ReservationPaid, false},
		{domain.ReservationCancelled, domain.ReservationPaid, false},
		{domain.ReservationCancelled, domain.ReservationPending, false},
		{domain.ReservationCancelled, domain.ReservationCancelled, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestReservationStatus_Blocks(t *testing.T) {
	assert.True(t, domain.ReservationPending.Blocks())
	assert.True(t, domain.ReservationPaid.Blocks())
	assert.False(t, domain.ReservationCancelled.Blocks())
}

func TestReservation_AmountDue(t *testing.T) {
	r := domain.Reservation{TotalAmount: 10000, SecurityDeposit: 2500}
	assert.Equal(t, domain.Money(12500), r.AmountDue())
}

func TestInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-2025-000042", domain.InvoiceNumber(2025, 42))
	assert.Equal(t, "INV-2026-1234567", domain.InvoiceNumber(2026, 1234567))
}
