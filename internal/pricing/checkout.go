package pricing

import (
	"github.com/shopspring/decimal"

	"fleetpay-backend/internal/domain"
)

// CheckoutInput carries the raw readings and rates for a single vehicle
// return. Odometer values are whole kilometers; fuel levels are tank percent.
type CheckoutInput struct {
	CheckinOdometer  int64
	CheckoutOdometer int64
	IncludedKm       int64
	OverageRate      decimal.Decimal

	FuelStartPercent decimal.Decimal
	FuelEndPercent   decimal.Decimal
	FuelTolerance    decimal.Decimal
	TankLiters       decimal.Decimal
	PricePerLiter    decimal.Decimal
	FuelShortfallFee decimal.Decimal

	ExteriorClean       bool
	InteriorClean       bool
	ExteriorCleaningFee decimal.Decimal
	InteriorCleaningFee decimal.Decimal
}

// CheckoutBreakdown is the itemized result of a checkout computation, before
// fines and deposit reconciliation.
type CheckoutBreakdown struct {
	KmDriven     int64
	KmOverage    int64
	KmOverageFee decimal.Decimal

	FuelMissingLiters decimal.Decimal
	FuelFee           decimal.Decimal

	ExteriorCleaningFee decimal.Decimal
	InteriorCleaningFee decimal.Decimal

	TotalExtraCharges decimal.Decimal
}

// ComputeCheckout itemizes the distance, fuel and cleaning charges for one
// vehicle return. A checkout odometer below the checkin reading is a
// data-integrity error, never clamped.
func ComputeCheckout(in CheckoutInput) (CheckoutBreakdown, error) {
	kmDriven := in.CheckoutOdometer - in.CheckinOdometer
	if kmDriven < 0 {
		return CheckoutBreakdown{}, domain.Validationf("odometer",
			"checkout odometer %d is below checkin odometer %d", in.CheckoutOdometer, in.CheckinOdometer)
	}

	kmOverage := kmDriven - in.IncludedKm
	if kmOverage < 0 {
		kmOverage = 0
	}
	kmOverageFee := decimal.NewFromInt(kmOverage).Mul(in.OverageRate)

	// Fuel is charged only past the tolerance band; a diff exactly at the
	// tolerance is free.
	fuelDiff := in.FuelStartPercent.Sub(in.FuelEndPercent)
	missingLiters := decimal.Zero
	fuelFee := decimal.Zero
	if fuelDiff.GreaterThan(in.FuelTolerance) {
		missingLiters = fuelDiff.Div(decimal.NewFromInt(100)).Mul(in.TankLiters)
		fuelFee = missingLiters.Mul(in.PricePerLiter).Add(in.FuelShortfallFee)
	}

	exteriorFee := decimal.Zero
	if !in.ExteriorClean {
		exteriorFee = in.ExteriorCleaningFee
	}
	interiorFee := decimal.Zero
	if !in.InteriorClean {
		interiorFee = in.InteriorCleaningFee
	}

	total := kmOverageFee.Add(fuelFee).Add(exteriorFee).Add(interiorFee)

	return CheckoutBreakdown{
		KmDriven:            kmDriven,
		KmOverage:           kmOverage,
		KmOverageFee:        kmOverageFee,
		FuelMissingLiters:   missingLiters,
		FuelFee:             fuelFee,
		ExteriorCleaningFee: exteriorFee,
		InteriorCleaningFee: interiorFee,
		TotalExtraCharges:   total,
	}, nil
}

// DepositSplit reconciles total extra charges (fines already folded in)
// against the booking deposit.
func DepositSplit(deposit, totalCharges decimal.Decimal) (refund, dueFromRenter decimal.Decimal) {
	refund = deposit.Sub(totalCharges)
	if refund.IsNegative() {
		refund = decimal.Zero
	}
	dueFromRenter = totalCharges.Sub(deposit)
	if dueFromRenter.IsNegative() {
		dueFromRenter = decimal.Zero
	}
	return refund, dueFromRenter
}
