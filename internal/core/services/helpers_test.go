package services_test

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/srgjo27/rental_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/rental_booking/internal/core/domain"
	"github.com/srgjo27/rental_booking/internal/core/ports/mocks"
	"github.com/srgjo27/rental_booking/internal/core/pricing"
	"github.com/srgjo27/rental_booking/internal/core/services"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

type fixture struct {
	clock        *testClock
	vehicle      domain.Vehicle
	vehicles     *memory.VehicleRepository
	reservations *memory.ReservationRepository
	invoices     *memory.InvoiceRepository
	notifier     *mocks.Notifier
	bookings     *services.BookingService
	billing      *services.InvoiceService
}

func newFixture(t *testing.T, cfg services.BookingConfig) *fixture {
	f := &fixture{
		clock: &testClock{now: at("2025-05-01T00:00")},
		vehicle: domain.Vehicle{
			ID:              uuid.New(),
			Name:            "Toyota Avanza",
			RatePerHour:     500,
			RatePerDay:      5000,
			SecurityDeposit: 2000,
		},
		reservations: memory.NewReservationRepository(),
		invoices:     memory.NewInvoiceRepository(),
		notifier:     mocks.NewNotifier(t),
	}
	f.vehicles = memory.NewVehicleRepository(f.vehicle)

	if cfg.Strategy == "" {
		cfg.Strategy = pricing.MinOfBoth
	}
	f.bookings = services.NewBookingService(f.vehicles, f.reservations, f.notifier, f.clock, cfg)
	f.billing = services.NewInvoiceService(f.reservations, f.invoices, f.clock)

	return f
}

func (f *fixture) expectEvents(typ domain.EventType) *mock.Call {
	return f.notifier.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.BookingEvent) bool {
		return e.Type == typ
	})).Return(nil)
}

func (f *fixture) request(start, end string) services.CreateBookingRequest {
	return services.CreateBookingRequest{
		VehicleID: f.vehicle.ID,
		Customer:  domain.Customer{ID: uuid.New(), Name: "Rina", Email: "rina@example.com"},
		Start:     at(start),
		End:       at(end),
	}
}
