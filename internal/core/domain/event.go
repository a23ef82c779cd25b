package domain

import "time"

type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventPaymentConfirmed EventType = "booking.paid"
	EventBookingCancelled EventType = "booking.cancelled"
)

// BookingEvent is emitted after a state change has been durably written.
type BookingEvent struct {
	Type        EventType   `json:"type"`
	Reservation Reservation `json:"reservation"`
	OccurredAt  time.Time   `json:"occurred_at"`
}
