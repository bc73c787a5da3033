package domain

import "github.com/shopspring/decimal"

// Vehicle is a read-only input to the engine, owned by the vehicle registry.
type Vehicle struct {
	ID                  string          `json:"id"`
	CustomerID          string          `json:"customer_id"`
	Registration        string          `json:"registration"`
	Make                string          `json:"make"`
	Model               string          `json:"model"`
	ReplacementValue    decimal.Decimal `json:"replacement_value"`
	DailyRate           decimal.Decimal `json:"daily_rate"`
	DepositAmount       decimal.Decimal `json:"deposit_amount"`
	FuelTankLiters      decimal.Decimal `json:"fuel_tank_liters"`
	ExteriorCleaningFee decimal.Decimal `json:"exterior_cleaning_fee"`
	InteriorCleaningFee decimal.Decimal `json:"interior_cleaning_fee"`
}
