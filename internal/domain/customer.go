package domain

import "github.com/shopspring/decimal"

type CommissionPlan string

const (
	CommissionPlanNone    CommissionPlan = "none"
	CommissionPlanPrivate CommissionPlan = "private"
	CommissionPlanBasic   CommissionPlan = "basic"
	CommissionPlanPremium CommissionPlan = "premium"
)

// CommissionMode records which rate model a customer is billed under.
// The size-tiered scale is reporting/export only; live billing always
// resolves override-then-plan.
type CommissionMode string

const (
	CommissionModePlan   CommissionMode = "plan"
	CommissionModeTiered CommissionMode = "tiered"
)

// FleetCustomer is owned by the external identity/profile store.
// The engine only reads it.
type FleetCustomer struct {
	ID                      string           `json:"id"`
	Email                   string           `json:"email"`
	Name                    string           `json:"name"`
	CompanyName             string           `json:"company_name"`
	Plan                    CommissionPlan   `json:"plan"`
	CommissionMode          CommissionMode   `json:"commission_mode"`
	CommissionRateOverride  *decimal.Decimal `json:"commission_rate_override,omitempty"`
	ContractMonths          int              `json:"contract_months"`
	ContractMonthsRemaining int              `json:"contract_months_remaining"`
}
