package ports

import (
	"context"
	"time"

	"github.com/srgjo27/rental_booking/internal/core/domain"
)

type Clock interface {
	Now() time.Time
}

type Notifier interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}
