package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SettlementStatus string

const (
	SettlementStatusPending SettlementStatus = "pending"
	SettlementStatusPaid    SettlementStatus = "paid"
)

// MonthlySettlement is one revenue statement per (customer, period). Period is
// the first day of the settlement month. Duplicate creation for the same
// period is rejected, never overwritten.
type MonthlySettlement struct {
	ID               int64            `json:"id"`
	CustomerID       string           `json:"customer_id"`
	Period           time.Time        `json:"period"`
	TotalRevenue     decimal.Decimal  `json:"total_revenue"`
	CommissionRate   decimal.Decimal  `json:"commission_rate"`
	CommissionAmount decimal.Decimal  `json:"commission_amount"`
	InstallmentTotal decimal.Decimal  `json:"installment_total"`
	NetPayout        decimal.Decimal  `json:"net_payout"`
	BookingsCount    int              `json:"bookings_count"`
	Status           SettlementStatus `json:"status"`
	PaidAt           *time.Time       `json:"paid_at,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// VehicleEconomy is a per-vehicle reporting row for the monthly export. It is
// the only consumer of the size-tiered commission scale.
type VehicleEconomy struct {
	VehicleID          string          `json:"vehicle_id"`
	Registration       string          `json:"registration"`
	Period             time.Time       `json:"period"`
	GrossRevenue       decimal.Decimal `json:"gross_revenue"`
	CommissionRate     decimal.Decimal `json:"commission_rate"`
	CommissionAmount   decimal.Decimal `json:"commission_amount"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	NetPayout          decimal.Decimal `json:"net_payout"`
	BookingsCount      int             `json:"bookings_count"`
	Guarantee          GuaranteeStatus `json:"guarantee"`
}
