package domain

import "github.com/shopspring/decimal"

// GuaranteeStatus is derived per vehicle per year from booking data; it is
// never persisted and is recomputed on demand.
type GuaranteeStatus struct {
	VehicleID  string          `json:"vehicle_id"`
	Year       int             `json:"year"`
	DaysRented int             `json:"days_rented"`
	TargetDays int             `json:"target_days"`
	Percentage decimal.Decimal `json:"percentage"`
	Met        bool            `json:"met"`
}
