package pricing

import "github.com/shopspring/decimal"

// RepaymentMonths floors the repayment horizon at minMonths regardless of how
// little contract time the customer has left.
func RepaymentMonths(contractMonthsRemaining, minMonths int) int {
	if contractMonthsRemaining < minMonths {
		return minMonths
	}
	return contractMonthsRemaining
}

// MonthlyInstallment spreads the financed amount plus the setup fee over the
// repayment horizon, rounded up to a whole currency unit. Fixed at
// origination; payments never retroactively recompute it.
func MonthlyInstallment(amount, setupFee decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		months = 1
	}
	return amount.Add(setupFee).Div(decimal.NewFromInt(int64(months))).Ceil()
}
