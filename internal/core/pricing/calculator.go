package pricing

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/srgjo27/rental_booking/internal/core/domain"
)

type Strategy string

const (
	PerHour   Strategy = "per-hour"
	PerDay    Strategy = "per-day"
	MinOfBoth Strategy = "min-of-both"
)

const DefaultStrategy = MinOfBoth

var (
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrUnknownStrategy = errors.New("unknown pricing strategy")
	ErrInvalidRate     = errors.New("rate must not be negative")
	ErrPriceOverflow   = errors.New("price overflows money range")
)

func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case PerHour, PerDay, MinOfBoth:
		return st, nil
	case "":
		return DefaultStrategy, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

type Result struct {
	TotalAmount   domain.Money `json:"total_amount"`
	DurationHours int          `json:"duration_hours"`
	DurationDays  int          `json:"duration_days"`
	PriceByHour   domain.Money `json:"price_by_hour"`
	PriceByDay    domain.Money `json:"price_by_day"`
}

// DurationHours bills partial hours as whole hours.
func DurationHours(window domain.TimeRange) int {
	d := window.Duration()
	hours := int(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	return hours
}

func Calculate(durationHours int, ratePerHour, ratePerDay domain.Money, strategy Strategy) (Result, error) {
	if durationHours <= 0 {
		return Result{}, fmt.Errorf("%w: got %d hours", ErrInvalidDuration, durationHours)
	}

	if ratePerHour < 0 || ratePerDay < 0 {
		return Result{}, fmt.Errorf("%w: per hour %d, per day %d", ErrInvalidRate, ratePerHour, ratePerDay)
	}

	days := (durationHours + 23) / 24

	byHour, err := multiply(durationHours, ratePerHour)
	if err != nil {
		return Result{}, err
	}

	byDay, err := multiply(days, ratePerDay)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		DurationHours: durationHours,
		DurationDays:  days,
		PriceByHour:   byHour,
		PriceByDay:    byDay,
	}

	switch strategy {
	case PerHour:
		res.TotalAmount = res.PriceByHour
	case PerDay:
		res.TotalAmount = res.PriceByDay
	case MinOfBoth:
		res.TotalAmount = min(res.PriceByHour, res.PriceByDay)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	return res, nil
}

// multiply expects n > 0 and rate >= 0.
func multiply(n int, rate domain.Money) (domain.Money, error) {
	if rate != 0 && int64(n) > math.MaxInt64/int64(rate) {
		return 0, fmt.Errorf("%w: %d units at %d", ErrPriceOverflow, n, rate)
	}
	return domain.Money(n) * rate, nil
}

func Quote(window domain.TimeRange, vehicle domain.Vehicle, strategy Strategy) (Result, error) {
	return Calculate(DurationHours(window), vehicle.RatePerHour, vehicle.RatePerDay, strategy)
}
