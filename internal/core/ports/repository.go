package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/rental_booking/internal/core/domain"
)

type VehicleRepository interface {
	GetByID(ctx context.Context, vehicleID uuid.UUID) (*domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
}

// ReservationTx is only valid inside ReservationRepository.WithVehicleLock.
type ReservationTx interface {
	FindOverlapping(ctx context.Context, vehicleID uuid.UUID, interval domain.TimeRange) ([]domain.Reservation, error)
	Insert(ctx context.Context, reservation *domain.Reservation) error
}

type ReservationRepository interface {
	// WithVehicleLock runs fn so that no other admission for the same vehicle
	// can interleave between its reads and its insert. fn's error aborts the
	// unit of work.
	WithVehicleLock(ctx context.Context, vehicleID uuid.UUID, fn func(ctx context.Context, tx ReservationTx) error) error

	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	FindOverlapping(ctx context.Context, vehicleID uuid.UUID, interval domain.TimeRange) ([]domain.Reservation, error)
	FindBlockingByVehicles(ctx context.Context, vehicleIDs []uuid.UUID, interval domain.TimeRange) (map[uuid.UUID][]domain.TimeRange, error)

	// TransitionStatus moves the reservation to `to` only if its current
	// status is one of from. When the guard fails it returns the current
	// row with applied=false.
	TransitionStatus(ctx context.Context, id int64, from []domain.ReservationStatus, to domain.ReservationStatus, at time.Time) (res *domain.Reservation, applied bool, err error)

	GetStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]int64, error)
}

type InvoiceRepository interface {
	FindByBookingID(ctx context.Context, bookingID int64) (*domain.Invoice, error)
	// InsertIfAbsent returns the stored invoice for the booking, which is
	// the given one only if this call won the insert.
	InsertIfAbsent(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error)
}
