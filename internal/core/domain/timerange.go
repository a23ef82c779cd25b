package domain

import (
	"fmt"
	"time"
)

// TimeRange is a half-open interval [Start, End).
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// MaxRentalDuration is the longest window a booking or search may cover.
const MaxRentalDuration = 366 * 24 * time.Hour

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, fmt.Errorf("%w: start %s is not before end %s",
			ErrInvalidWindow, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	if end.Sub(start) > MaxRentalDuration {
		return TimeRange{}, fmt.Errorf("%w: window from %s to %s is longer than %s",
			ErrInvalidWindow, start.Format(time.RFC3339), end.Format(time.RFC3339), MaxRentalDuration)
	}

	return TimeRange{Start: start, End: end}, nil
}

func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Overlaps is the only overlap predicate in the module. Ranges that touch at
// a boundary do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return !(!r.End.After(other.Start) || !r.Start.Before(other.End))
}

func Overlaps(a, b TimeRange) bool {
	return a.Overlaps(b)
}
