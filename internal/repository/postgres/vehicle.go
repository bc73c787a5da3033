package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleetpay-backend/internal/domain"
	"fleetpay-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, customer_id, registration, make, model, replacement_value, daily_rate,
	deposit_amount, fuel_tank_liters, exterior_cleaning_fee, interior_cleaning_fee`

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	var v domain.Vehicle
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.CustomerID, &v.Registration,
		&v.Make, &v.Model, &v.ReplacementValue, &v.DailyRate, &v.DepositAmount,
		&v.FuelTankLiters, &v.ExteriorCleaningFee, &v.InteriorCleaningFee)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "vehicle", ID: id}
	}
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}
	return &v, nil
}

func (r *vehicleRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE customer_id = $1 ORDER BY registration`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.CustomerID, &v.Registration, &v.Make, &v.Model,
			&v.ReplacementValue, &v.DailyRate, &v.DepositAmount, &v.FuelTankLiters,
			&v.ExteriorCleaningFee, &v.InteriorCleaningFee); err != nil {
			return nil, &domain.DependencyError{Dependency: "database", Err: err}
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *vehicleRepository) CountByCustomer(ctx context.Context, customerID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM vehicles WHERE customer_id = $1`, customerID).Scan(&count)
	if err != nil {
		return 0, &domain.DependencyError{Dependency: "database", Err: err}
	}
	return count, nil
}
