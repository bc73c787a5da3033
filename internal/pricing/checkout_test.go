package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"fleetpay-backend/internal/domain"
)

func defaultInput() CheckoutInput {
	return CheckoutInput{
		CheckinOdometer:  10000,
		CheckoutOdometer: 10000,
		IncludedKm:       500,
		OverageRate:      decimal.NewFromInt(2),
		FuelStartPercent: decimal.NewFromInt(100),
		FuelEndPercent:   decimal.NewFromInt(100),
		FuelTolerance:    decimal.NewFromInt(5),
		TankLiters:       decimal.NewFromInt(50),
		PricePerLiter:    decimal.NewFromInt(15),
		FuelShortfallFee: decimal.NewFromInt(150),
		ExteriorClean:    true,
		InteriorClean:    true,
	}
}

func TestComputeCheckout_KmOverage(t *testing.T) {
	in := defaultInput()
	in.CheckoutOdometer = 10650

	got, err := ComputeCheckout(in)
	assert.NoError(t, err)
	assert.Equal(t, int64(650), got.KmDriven)
	assert.Equal(t, int64(150), got.KmOverage)
	assert.True(t, got.KmOverageFee.Equal(decimal.NewFromInt(300)), "fee %s", got.KmOverageFee)
	assert.True(t, got.TotalExtraCharges.Equal(decimal.NewFromInt(300)))
}

func TestComputeCheckout_FuelShortfall(t *testing.T) {
	in := defaultInput()
	in.FuelStartPercent = decimal.NewFromInt(90)
	in.FuelEndPercent = decimal.NewFromInt(70)

	got, err := ComputeCheckout(in)
	assert.NoError(t, err)
	// diff 20 > tolerance 5: 10 liters missing, 10*15+150 = 300
	assert.True(t, got.FuelMissingLiters.Equal(decimal.NewFromInt(10)), "liters %s", got.FuelMissingLiters)
	assert.True(t, got.FuelFee.Equal(decimal.NewFromInt(300)), "fee %s", got.FuelFee)
}

func TestComputeCheckout_FuelToleranceBoundary(t *testing.T) {
	t.Run("Diff exactly at tolerance is free", func(t *testing.T) {
		in := defaultInput()
		in.FuelStartPercent = decimal.NewFromInt(80)
		in.FuelEndPercent = decimal.NewFromInt(75)

		got, err := ComputeCheckout(in)
		assert.NoError(t, err)
		assert.True(t, got.FuelFee.IsZero())
	})

	t.Run("Diff just past tolerance is charged", func(t *testing.T) {
		in := defaultInput()
		in.FuelStartPercent = decimal.RequireFromString("80.01")
		in.FuelEndPercent = decimal.NewFromInt(75)

		got, err := ComputeCheckout(in)
		assert.NoError(t, err)
		assert.True(t, got.FuelFee.GreaterThan(decimal.Zero))
	})
}

func TestComputeCheckout_CleaningFees(t *testing.T) {
	in := defaultInput()
	in.ExteriorClean = false
	in.InteriorClean = false
	in.ExteriorCleaningFee = decimal.NewFromInt(250)
	in.InteriorCleaningFee = decimal.NewFromInt(350)

	got, err := ComputeCheckout(in)
	assert.NoError(t, err)
	assert.True(t, got.ExteriorCleaningFee.Equal(decimal.NewFromInt(250)))
	assert.True(t, got.InteriorCleaningFee.Equal(decimal.NewFromInt(350)))
	assert.True(t, got.TotalExtraCharges.Equal(decimal.NewFromInt(600)))
}

func TestComputeCheckout_NegativeOdometerDelta(t *testing.T) {
	in := defaultInput()
	in.CheckoutOdometer = 9999

	_, err := ComputeCheckout(in)
	assert.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestDepositSplit(t *testing.T) {
	t.Run("Charges below deposit", func(t *testing.T) {
		refund, due := DepositSplit(decimal.NewFromInt(5000), decimal.NewFromInt(600))
		assert.True(t, refund.Equal(decimal.NewFromInt(4400)))
		assert.True(t, due.IsZero())
	})

	t.Run("Charges above deposit", func(t *testing.T) {
		refund, due := DepositSplit(decimal.NewFromInt(500), decimal.NewFromInt(1200))
		assert.True(t, refund.IsZero())
		assert.True(t, due.Equal(decimal.NewFromInt(700)))
	})

	t.Run("Exact match", func(t *testing.T) {
		refund, due := DepositSplit(decimal.NewFromInt(600), decimal.NewFromInt(600))
		assert.True(t, refund.IsZero())
		assert.True(t, due.IsZero())
	})
}
