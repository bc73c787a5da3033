package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CheckoutSettlementStatus string

const (
	CheckoutStatusCalculated CheckoutSettlementStatus = "calculated"
	CheckoutStatusApproved   CheckoutSettlementStatus = "approved"
	CheckoutStatusSettled    CheckoutSettlementStatus = "settled"
)

// CheckoutRecord is the checkout half of a check-in/out pair, created once per
// booking at vehicle return. Immutable once settled; corrections append a new
// record instead of mutating history.
type CheckoutRecord struct {
	ID        int64  `json:"id"`
	BookingID string `json:"booking_id"`
	VehicleID string `json:"vehicle_id"`

	KmDriven     int64           `json:"km_driven"`
	KmIncluded   int64           `json:"km_included"`
	KmOverage    int64           `json:"km_overage"`
	KmOverageFee decimal.Decimal `json:"km_overage_fee"`

	FuelStartPercent  decimal.Decimal `json:"fuel_start_percent"`
	FuelEndPercent    decimal.Decimal `json:"fuel_end_percent"`
	FuelMissingLiters decimal.Decimal `json:"fuel_missing_liters"`
	FuelFee           decimal.Decimal `json:"fuel_fee"`

	ExteriorClean       bool            `json:"exterior_clean"`
	InteriorClean       bool            `json:"interior_clean"`
	ExteriorCleaningFee decimal.Decimal `json:"exterior_cleaning_fee"`
	InteriorCleaningFee decimal.Decimal `json:"interior_cleaning_fee"`

	FinesTotal          decimal.Decimal          `json:"fines_total"`
	TotalExtraCharges   decimal.Decimal          `json:"total_extra_charges"`
	DepositRefund       decimal.Decimal          `json:"deposit_refund"`
	AmountDueFromRenter decimal.Decimal          `json:"amount_due_from_renter"`
	SettlementStatus    CheckoutSettlementStatus `json:"settlement_status"`

	CreatedAt time.Time  `json:"created_at"`
	SettledAt *time.Time `json:"settled_at,omitempty"`
}
