package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/srgjo27/rental_booking/internal/core/availability"
	"github.com/srgjo27/rental_booking/internal/core/domain"
	"github.com/srgjo27/rental_booking/internal/core/ports"
	"github.com/srgjo27/rental_booking/internal/core/pricing"
)

const staleBatchSize = 100

type CreateBookingRequest struct {
	VehicleID uuid.UUID       `json:"vehicle_id"`
	Customer  domain.Customer `json:"customer"`
	Start     time.Time       `json:"start"`
	End       time.Time       `json:"end"`
}

type AvailableVehicle struct {
	Vehicle domain.Vehicle `json:"vehicle"`
	Quote   pricing.Result `json:"quote"`
}

type BookingConfig struct {
	Strategy pricing.Strategy
	// PendingTTL of zero leaves PENDING reservations in place forever.
	PendingTTL    time.Duration
	SweepInterval time.Duration
}

type BookingService struct {
	vehicles     ports.VehicleRepository
	reservations ports.ReservationRepository
	notifier     ports.Notifier
	clock        ports.Clock
	cfg          BookingConfig
}

func NewBookingService(vehicles ports.VehicleRepository, reservations ports.ReservationRepository, notifier ports.Notifier, clock ports.Clock, cfg BookingConfig) *BookingService {
	if cfg.Strategy == "" {
		cfg.Strategy = pricing.DefaultStrategy
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}

	return &BookingService{
		vehicles:     vehicles,
		reservations: reservations,
		notifier:     notifier,
		clock:        clock,
		cfg:          cfg,
	}
}

func (s *BookingService) RequestBooking(ctx context.Context, req CreateBookingRequest) (_ *domain.Reservation, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.RequestBooking")
	span.SetAttributes(attribute.String("vehicle.id", req.VehicleID.String()))
	defer func() { endSpan(span, err) }()

	window, err := domain.NewTimeRange(req.Start, req.End)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if !window.Start.After(now) {
		return nil, fmt.Errorf("%w: start %s is not in the future", domain.ErrInvalidWindow, window.Start.Format(time.RFC3339))
	}

	vehicle, err := s.vehicles.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, storageError("load vehicle", err)
	}

	quote, err := pricing.Quote(window, *vehicle, s.cfg.Strategy)
	if err != nil {
		return nil, err
	}

	reservation := &domain.Reservation{
		VehicleID:       vehicle.ID,
		Customer:        req.Customer,
		Interval:        window,
		Status:          domain.ReservationPending,
		DurationHours:   quote.DurationHours,
		DurationDays:    quote.DurationDays,
		TotalAmount:     quote.TotalAmount,
		SecurityDeposit: vehicle.SecurityDeposit,
		CreatedAt:       now,
	}

	err = s.reservations.WithVehicleLock(ctx, vehicle.ID, func(ctx context.Context, tx ports.ReservationTx) error {
		existing, err := tx.FindOverlapping(ctx, vehicle.ID, window)
		if err != nil {
			return err
		}

		if !availability.IsAvailable(window, availability.BlockingIntervals(existing)) {
			return domain.ErrSlotTaken
		}

		return tx.Insert(ctx, reservation)
	})
	if err != nil {
		return nil, storageError("admit booking", err)
	}

	span.SetAttributes(attribute.Int64("booking.id", reservation.ID))
	s.notify(ctx, domain.EventBookingCreated, *reservation)

	return reservation, nil
}

// ConfirmPayment is safe to call repeatedly: a booking that is already PAID
// is returned unchanged.
func (s *BookingService) ConfirmPayment(ctx context.Context, bookingID int64) (_ *domain.Reservation, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.ConfirmPayment")
	span.SetAttributes(attribute.Int64("booking.id", bookingID))
	defer func() { endSpan(span, err) }()

	res, applied, err := s.reservations.TransitionStatus(ctx, bookingID,
		[]domain.ReservationStatus{domain.ReservationPending}, domain.ReservationPaid, s.clock.Now())
	if err != nil {
		return nil, storageError("confirm payment", err)
	}

	if !applied {
		if res.Status == domain.ReservationPaid {
			return res, nil
		}
		return nil, fmt.Errorf("%w: booking %d is %s", domain.ErrInvalidTransition, bookingID, res.Status)
	}

	s.notify(ctx, domain.EventPaymentConfirmed, *res)

	return res, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, bookingID int64) (_ *domain.Reservation, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.CancelBooking")
	span.SetAttributes(attribute.Int64("booking.id", bookingID))
	defer func() { endSpan(span, err) }()

	return s.cancel(ctx, bookingID)
}

func (s *BookingService) cancel(ctx context.Context, bookingID int64) (*domain.Reservation, error) {
	res, applied, err := s.reservations.TransitionStatus(ctx, bookingID,
		[]domain.ReservationStatus{domain.ReservationPending, domain.ReservationPaid}, domain.ReservationCancelled, s.clock.Now())
	if err != nil {
		return nil, storageError("cancel booking", err)
	}

	if !applied {
		if res.Status == domain.ReservationCancelled {
			return res, nil
		}
		return nil, fmt.Errorf("%w: booking %d is %s", domain.ErrInvalidTransition, bookingID, res.Status)
	}

	s.notify(ctx, domain.EventBookingCancelled, *res)

	return res, nil
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID int64) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, bookingID)
	if err != nil {
		return nil, storageError("get booking", err)
	}
	return res, nil
}

// SearchAvailable lists vehicles free for the window with their quotes. An
// empty vehicleIDs searches the whole inventory.
func (s *BookingService) SearchAvailable(ctx context.Context, vehicleIDs []uuid.UUID, start, end time.Time) (_ []AvailableVehicle, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.SearchAvailable")
	defer func() { endSpan(span, err) }()

	window, err := domain.NewTimeRange(start, end)
	if err != nil {
		return nil, err
	}

	var vehicles []domain.Vehicle
	if len(vehicleIDs) == 0 {
		vehicles, err = s.vehicles.List(ctx)
		if err != nil {
			return nil, storageError("list vehicles", err)
		}
	} else {
		for _, id := range vehicleIDs {
			v, err := s.vehicles.GetByID(ctx, id)
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, storageError("load vehicle", err)
			}
			vehicles = append(vehicles, *v)
		}
	}

	ids := make([]uuid.UUID, 0, len(vehicles))
	byID := make(map[uuid.UUID]domain.Vehicle, len(vehicles))
	for _, v := range vehicles {
		ids = append(ids, v.ID)
		byID[v.ID] = v
	}

	blocking, err := s.reservations.FindBlockingByVehicles(ctx, ids, window)
	if err != nil {
		return nil, storageError("find blocking reservations", err)
	}

	free := availability.FilterAvailable(ids, window, blocking)
	out := make([]AvailableVehicle, 0, len(free))
	for _, id := range free {
		v := byID[id]
		quote, err := pricing.Quote(window, v, s.cfg.Strategy)
		if err != nil {
			return nil, err
		}
		out = append(out, AvailableVehicle{Vehicle: v, Quote: quote})
	}

	span.SetAttributes(attribute.Int("vehicles.available", len(out)))
	return out, nil
}

func (s *BookingService) RunBackgroundCleanup(ctx context.Context) {
	if s.cfg.PendingTTL <= 0 {
		log.Println("Background Worker disabled: PENDING_TTL is not set, stale PENDING bookings are kept.")
		return
	}

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	log.Printf("Background Worker started: Cancelling PENDING bookings older than %s every %s...", s.cfg.PendingTTL, s.cfg.SweepInterval)

	for {
		select {
		case <-ctx.Done():
			log.Println("Background Worker stopped.")
			return
		case <-ticker.C:
			s.ProcessStaleBookings(ctx)
		}
	}
}

// ProcessStaleBookings returns how many bookings it cancelled.
func (s *BookingService) ProcessStaleBookings(ctx context.Context) int {
	if s.cfg.PendingTTL <= 0 {
		return 0
	}

	ids, err := s.reservations.GetStalePending(ctx, s.clock.Now().Add(-s.cfg.PendingTTL), staleBatchSize)
	if err != nil {
		log.Printf("Error fetching stale bookings: %v", err)
		return 0
	}

	if len(ids) == 0 {
		return 0
	}

	log.Printf("Found %d stale bookings. Cancelling...", len(ids))

	cancelled := 0
	for _, id := range ids {
		res, applied, err := s.reservations.TransitionStatus(ctx, id,
			[]domain.ReservationStatus{domain.ReservationPending}, domain.ReservationCancelled, s.clock.Now())
		if err != nil {
			log.Printf("Failed to cancel booking %d: %v", id, err)
			continue
		}
		if !applied {
			continue
		}

		cancelled++
		s.notify(ctx, domain.EventBookingCancelled, *res)
		log.Printf("Booking %d expired and slot released.", id)
	}

	return cancelled
}

func (s *BookingService) notify(ctx context.Context, typ domain.EventType, res domain.Reservation) {
	if s.notifier == nil {
		return
	}

	event := domain.BookingEvent{Type: typ, Reservation: res, OccurredAt: s.clock.Now()}
	if err := s.notifier.Publish(ctx, event); err != nil {
		log.Printf("Failed to publish %s for booking %d: %v", typ, res.ID, err)
	}
}
