package availability

import (
	"github.com/google/uuid"
	"github.com/srgjo27/rental_booking/internal/core/domain"
)

// IsAvailable expects existing to hold only blocking intervals of one vehicle.
func IsAvailable(candidate domain.TimeRange, existing []domain.TimeRange) bool {
	for _, r := range existing {
		if domain.Overlaps(candidate, r) {
			return false
		}
	}
	return true
}

// FilterAvailable keeps the order of vehicles. It is a read view for search
// and never the admission authority.
func FilterAvailable(vehicles []uuid.UUID, candidate domain.TimeRange, bookingsByVehicle map[uuid.UUID][]domain.TimeRange) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(vehicles))
	for _, id := range vehicles {
		if IsAvailable(candidate, bookingsByVehicle[id]) {
			out = append(out, id)
		}
	}
	return out
}

// BlockingIntervals drops cancelled reservations.
func BlockingIntervals(reservations []domain.Reservation) []domain.TimeRange {
	out := make([]domain.TimeRange, 0, len(reservations))
	for _, r := range reservations {
		if r.Status.Blocks() {
			out = append(out, r.Interval)
		}
	}
	return out
}
