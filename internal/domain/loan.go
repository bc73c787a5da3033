package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "active"
	LoanStatusPaidOff   LoanStatus = "paid_off"
	LoanStatusCancelled LoanStatus = "cancelled"
)

// Loan is a repair-financing loan against a fleet customer, optionally tied to
// a single vehicle. The installment is fixed at origination and never
// recomputed by payments.
type Loan struct {
	ID                 int64           `json:"id"`
	CustomerID         string          `json:"customer_id"`
	VehicleID          *string         `json:"vehicle_id,omitempty"`
	Description        string          `json:"description"`
	OriginalAmount     decimal.Decimal `json:"original_amount"`
	RemainingBalance   decimal.Decimal `json:"remaining_balance"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	SetupFee           decimal.Decimal `json:"setup_fee"`
	RemainingMonths    int             `json:"remaining_months"`
	Status             LoanStatus      `json:"status"`
	ConsolidationKey   *string         `json:"consolidation_key,omitempty"`
	PlatformFeePaidAt  *time.Time      `json:"platform_fee_paid_at,omitempty"`
	StartDate          time.Time       `json:"start_date"`
	CreatedAt          time.Time       `json:"created_at"`
}

type LoanPaymentType string

const (
	LoanPaymentTypeInstallment  LoanPaymentType = "installment"
	LoanPaymentTypeSetupFee     LoanPaymentType = "setup_fee"
	LoanPaymentTypeExtraPayment LoanPaymentType = "extra_payment"
)

// LoanPayment is append-only; the sum of a loan's payments never exceeds its
// original amount.
type LoanPayment struct {
	ID          int64           `json:"id"`
	LoanID      int64           `json:"loan_id"`
	PaymentDate time.Time       `json:"payment_date"`
	Amount      decimal.Decimal `json:"amount"`
	Type        LoanPaymentType `json:"type"`
	Notes       string          `json:"notes"`
}
