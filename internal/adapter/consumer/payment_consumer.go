package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/srgjo27/rental_booking/internal/core/domain"
)

const RKPaymentPaid = "payment.paid"

type PaymentPaid struct {
	Event   string `json:"event"`
	Version int    `json:"version"`
	Data    struct {
		PaymentID string `json:"payment_id"`
		BookingID int64  `json:"booking_id"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
	} `json:"data"`
}

type PaymentConfirmer interface {
	ConfirmPayment(ctx context.Context, bookingID int64) (*domain.Reservation, error)
}

type deliverySource interface {
	Deliveries(ctx context.Context) (<-chan amqp.Delivery, error)
}

type PaymentConsumer struct {
	bookings PaymentConfirmer
	source   deliverySource
}

func NewPaymentConsumer(bookings PaymentConfirmer, source deliverySource) *PaymentConsumer {
	return &PaymentConsumer{bookings: bookings, source: source}
}

// Run consumes until ctx is done or the channel closes. Duplicate
// payment.paid deliveries are harmless because confirmation is idempotent.
func (pc *PaymentConsumer) Run(ctx context.Context) error {
	msgs, err := pc.source.Deliveries(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			pc.dispatch(ctx, d)
		}
	}
}

func (pc *PaymentConsumer) dispatch(ctx context.Context, d amqp.Delivery) {
	requeue, err := pc.Handle(ctx, d.RoutingKey, d.Body)
	if err == nil {
		_ = d.Ack(false)
		return
	}

	log.Printf("[payment-consumer] key=%s err=%v requeue=%t", d.RoutingKey, err, requeue)
	_ = d.Nack(false, requeue)
}

// Handle reports whether a failed message is worth redelivering. Business
// rejections and malformed payloads are not.
func (pc *PaymentConsumer) Handle(ctx context.Context, key string, body []byte) (requeue bool, err error) {
	if key != RKPaymentPaid {
		return false, nil
	}

	var evt PaymentPaid
	if err := json.Unmarshal(body, &evt); err != nil {
		return false, fmt.Errorf("decode payload failed: %w", err)
	}

	if evt.Data.BookingID <= 0 {
		return false, errors.New("invalid event payload: missing booking_id")
	}

	_, err = pc.bookings.ConfirmPayment(ctx, evt.Data.BookingID)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidTransition):
		return false, err
	default:
		return true, err
	}
}
