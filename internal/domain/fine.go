package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fine is an unpaid traffic/parking charge attached to a booking. The engine
// reads fines and marks them paid when a checkout settlement completes; it
// never creates them.
type Fine struct {
	ID          int64           `json:"id"`
	BookingID   string          `json:"booking_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Paid        bool            `json:"paid"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	IssuedAt    time.Time       `json:"issued_at"`
}
