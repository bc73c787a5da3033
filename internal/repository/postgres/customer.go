package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"fleetpay-backend/internal/domain"
	"fleetpay-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, email, full_name, COALESCE(company_name, ''), fleet_plan, commission_mode,
	commission_rate_override, contract_months, contract_months_remaining`

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.FleetCustomer, error) {
	query := `SELECT ` + customerColumns + ` FROM fleet_customers WHERE id = $1`
	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "customer", ID: id}
	}
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}
	return c, nil
}

func (r *customerRepository) ListFleetCustomers(ctx context.Context) ([]domain.FleetCustomer, error) {
	query := `SELECT ` + customerColumns + ` FROM fleet_customers WHERE fleet_plan <> 'none' ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}
	defer rows.Close()

	var customers []domain.FleetCustomer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, &domain.DependencyError{Dependency: "database", Err: err}
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*domain.FleetCustomer, error) {
	var c domain.FleetCustomer
	var override sql.NullString
	if err := row.Scan(&c.ID, &c.Email, &c.Name, &c.CompanyName, &c.Plan, &c.CommissionMode,
		&override, &c.ContractMonths, &c.ContractMonthsRemaining); err != nil {
		return nil, err
	}
	if override.Valid {
		rate, err := decimal.NewFromString(override.String)
		if err != nil {
			return nil, err
		}
		c.CommissionRateOverride = &rate
	}
	return &c, nil
}
