package consumer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/rental_booking/internal/core/domain"
)

type confirmerMock struct {
	mock.Mock
}

func (m *confirmerMock) ConfirmPayment(ctx context.Context, bookingID int64) (*domain.Reservation, error) {
	args := m.Called(ctx, bookingID)
	res, _ := args.Get(0).(*domain.Reservation)
	return res, args.Error(1)
}

type chanSource struct {
	ch chan amqp.Delivery
}

func (s chanSource) Deliveries(context.Context) (<-chan amqp.Delivery, error) {
	return s.ch, nil
}

func body(bookingID int64) []byte {
	return []byte(fmt.Sprintf(`{"event":"payment.paid","version":1,"data":{"payment_id":"chrg_1","booking_id":%d,"amount":12000,"currency":"idr"}}`, bookingID))
}

func TestHandle_ConfirmsPayment(t *testing.T) {
	m := &confirmerMock{}
	m.On("ConfirmPayment", mock.Anything, int64(42)).Return(&domain.Reservation{ID: 42, Status: domain.ReservationPaid}, nil).Once()

	requeue, err := NewPaymentConsumer(m, nil).Handle(context.Background(), RKPaymentPaid, body(42))

	require.NoError(t, err)
	assert.False(t, requeue)
	m.AssertExpectations(t)
}

func TestHandle_Outcomes(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		requeue bool
	}{
		{"unknown booking", fmt.Errorf("confirm payment: %w", domain.ErrNotFound), false},
		{"cancelled booking", fmt.Errorf("x: %w", domain.ErrInvalidTransition), false},
		{"store down", fmt.Errorf("x: %w", domain.ErrStorageFailure), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &confirmerMock{}
			m.On("ConfirmPayment", mock.Anything, int64(7)).Return(nil, tc.err)

			requeue, err := NewPaymentConsumer(m, nil).Handle(context.Background(), RKPaymentPaid, body(7))

			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, tc.requeue, requeue)
		})
	}
}

func TestHandle_BadPayloads(t *testing.T) {
	pc := NewPaymentConsumer(&confirmerMock{}, nil)
	ctx := context.Background()

	requeue, err := pc.Handle(ctx, RKPaymentPaid, []byte("{"))
	assert.Error(t, err)
	assert.False(t, requeue)

	requeue, err = pc.Handle(ctx, RKPaymentPaid, []byte(`{"data":{}}`))
	assert.Error(t, err)
	assert.False(t, requeue)

	requeue, err = pc.Handle(ctx, "payment.failed", body(1))
	assert.NoError(t, err)
	assert.False(t, requeue)
}

func TestRun_ProcessesUntilChannelCloses(t *testing.T) {
	m := &confirmerMock{}
	m.On("ConfirmPayment", mock.Anything, int64(1)).Return(&domain.Reservation{ID: 1}, nil).Once()
	m.On("ConfirmPayment", mock.Anything, int64(2)).Return(nil, errors.New("boom")).Once()

	src := chanSource{ch: make(chan amqp.Delivery, 2)}
	src.ch <- amqp.Delivery{RoutingKey: RKPaymentPaid, Body: body(1)}
	src.ch <- amqp.Delivery{RoutingKey: RKPaymentPaid, Body: body(2)}
	close(src.ch)

	done := make(chan error, 1)
	go func() { done <- NewPaymentConsumer(m, src).Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("consumer did not return after channel closed")
	}
	m.AssertExpectations(t)
}
