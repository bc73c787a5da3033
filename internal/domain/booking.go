package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// RevenueStatuses are the booking statuses that count toward settlement revenue.
var RevenueStatuses = []BookingStatus{BookingStatusCompleted, BookingStatusActive}

// Booking is owned by the booking collaborator; the engine reads it and only
// annotates settlement status.
type Booking struct {
	ID           string          `json:"id"`
	VehicleID    string          `json:"vehicle_id"`
	CustomerID   string          `json:"customer_id"`
	RenterEmail  string          `json:"renter_email"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	IncludedKm   int64           `json:"included_km"`
	ExtraKmPrice decimal.Decimal `json:"extra_km_price"`
	Status       BookingStatus   `json:"status"`
}
