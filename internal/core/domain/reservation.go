package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationPaid      ReservationStatus = "PAID"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// Blocks reports whether a reservation in this status prevents overlapping
// bookings for the same vehicle.
func (s ReservationStatus) Blocks() bool {
	return s == ReservationPending || s == ReservationPaid
}

func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case ReservationPending:
		return next == ReservationPaid || next == ReservationCancelled
	case ReservationPaid:
		return next == ReservationCancelled
	default:
		return false
	}
}

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationPaid, ReservationCancelled:
		return true
	}
	return false
}

type Customer struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone,omitempty"`
}

type Reservation struct {
	ID              int64             `json:"id"`
	VehicleID       uuid.UUID         `json:"vehicle_id"`
	Customer        Customer          `json:"customer"`
	Interval        TimeRange         `json:"interval"`
	Status          ReservationStatus `json:"status"`
	DurationHours   int               `json:"duration_hours"`
	DurationDays    int               `json:"duration_days"`
	TotalAmount     Money             `json:"total_amount"`
	SecurityDeposit Money             `json:"security_deposit"`
	CreatedAt       time.Time         `json:"created_at"`
	PaidAt          *time.Time        `json:"paid_at,omitempty"`
	CancelledAt     *time.Time        `json:"cancelled_at,omitempty"`
}

// AmountDue is what the customer pays at confirmation: the locked rental
// price plus the deposit.
func (r Reservation) AmountDue() Money {
	return r.TotalAmount + r.SecurityDeposit
}
