package domain

import (
	"fmt"
	"time"
)

type Invoice struct {
	BookingID     int64     `json:"booking_id"`
	InvoiceNumber string    `json:"invoice_number"`
	Amount        Money     `json:"amount"`
	GeneratedAt   time.Time `json:"generated_at"`
}

func InvoiceNumber(year int, bookingID int64) string {
	return fmt.Sprintf("INV-%d-%06d", year, bookingID)
}
