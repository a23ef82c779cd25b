package domain

import "github.com/google/uuid"

// Money is an amount in minor currency units.
type Money int64

// Vehicle carries the rate facts owned by the inventory subsystem. The
// booking core only reads them.
type Vehicle struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	RatePerHour     Money     `json:"rate_per_hour"`
	RatePerDay      Money     `json:"rate_per_day"`
	SecurityDeposit Money     `json:"security_deposit"`
}
