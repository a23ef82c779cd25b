package notifier

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/srgjo27/rental_booking/internal/core/domain"
)

// BookingMessage is the wire payload for booking.* routing keys.
type BookingMessage struct {
	Event           string `json:"event"`
	Version         int    `json:"version"`
	BookingID       int64  `json:"booking_id"`
	VehicleID       string `json:"vehicle_id"`
	CustomerEmail   string `json:"customer_email,omitempty"`
	Status          string `json:"status"`
	Start           int64  `json:"start"` // unix seconds
	End             int64  `json:"end"`
	TotalAmount     int64  `json:"total_amount"`
	SecurityDeposit int64  `json:"security_deposit"`
	OccurredAt      string `json:"occurred_at"`
}

func NewBookingMessage(ev domain.BookingEvent) BookingMessage {
	r := ev.Reservation
	return BookingMessage{
		Event:           string(ev.Type),
		Version:         1,
		BookingID:       r.ID,
		VehicleID:       r.VehicleID.String(),
		CustomerEmail:   r.Customer.Email,
		Status:          string(r.Status),
		Start:           r.Interval.Start.Unix(),
		End:             r.Interval.End.Unix(),
		TotalAmount:     int64(r.TotalAmount),
		SecurityDeposit: int64(r.SecurityDeposit),
		OccurredAt:      ev.OccurredAt.UTC().Format(time.RFC3339),
	}
}

type jsonPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type RabbitNotifier struct {
	pub jsonPublisher
}

func NewRabbitNotifier(pub jsonPublisher) *RabbitNotifier {
	return &RabbitNotifier{pub: pub}
}

func (n *RabbitNotifier) Publish(ctx context.Context, ev domain.BookingEvent) error {
	if err := n.pub.PublishJSON(ctx, string(ev.Type), NewBookingMessage(ev)); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

// LogNotifier is used when no broker is configured.
type LogNotifier struct{}

func NewLog() *LogNotifier {
	return &LogNotifier{}
}

func (LogNotifier) Publish(_ context.Context, ev domain.BookingEvent) error {
	r := ev.Reservation
	log.Printf("[notify] %s :: booking=%d vehicle=%s %s status=%s total=%d",
		ev.Type, r.ID, r.VehicleID, HumanTimeRange(r.Interval), r.Status, r.TotalAmount)
	return nil
}

func HumanTimeRange(tr domain.TimeRange) string {
	return fmt.Sprintf("%s to %s", tr.Start.UTC().Format("2006-01-02 15:04"), tr.End.UTC().Format("2006-01-02 15:04"))
}
