package pricing

import (
	"github.com/shopspring/decimal"

	"fleetpay-backend/internal/domain"
)

// Flat per-plan commission rates used for live billing.
var planRates = map[domain.CommissionPlan]decimal.Decimal{
	domain.CommissionPlanPrivate: decimal.NewFromFloat(0.30),
	domain.CommissionPlanBasic:   decimal.NewFromFloat(0.20),
	domain.CommissionPlanPremium: decimal.NewFromFloat(0.35),
}

// ResolveCommissionRate returns the billing rate for a customer. An explicit
// override wins verbatim; otherwise the rate follows the plan. The boolean is
// false for unknown plans, which resolve to 0% — the caller logs a warning
// rather than silently charging an arbitrary rate.
func ResolveCommissionRate(plan domain.CommissionPlan, override *decimal.Decimal) (decimal.Decimal, bool) {
	if override != nil {
		return *override, true
	}
	rate, ok := planRates[plan]
	if !ok {
		return decimal.Zero, false
	}
	return rate, true
}

// TieredCommissionRate maps an active vehicle count to the size-tiered scale.
// Reporting/export only; never used for live billing.
func TieredCommissionRate(vehicleCount int) decimal.Decimal {
	switch {
	case vehicleCount >= 20:
		return decimal.NewFromFloat(0.20)
	case vehicleCount >= 10:
		return decimal.NewFromFloat(0.25)
	case vehicleCount >= 5:
		return decimal.NewFromFloat(0.30)
	default:
		return decimal.NewFromFloat(0.35)
	}
}

// CommissionAmount rounds revenue times rate to øre precision.
func CommissionAmount(revenue, rate decimal.Decimal) decimal.Decimal {
	return revenue.Mul(rate).Round(2)
}

// NetPayout subtracts commission and any loan installment from revenue.
// Call sites that intend to exclude the installment pass decimal.Zero
// explicitly so the omission is visible in review.
func NetPayout(revenue, commission, installment decimal.Decimal) decimal.Decimal {
	return revenue.Sub(commission).Sub(installment)
}
