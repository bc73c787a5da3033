package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"fleetpay-backend/internal/domain"
	"fleetpay-backend/internal/repository"
)

type settlementRepository struct {
	db *sql.DB
}

func NewSettlementRepository(db *sql.DB) repository.SettlementRepository {
	return &settlementRepository{db: db}
}

const settlementColumns = `id, customer_id, settlement_period, total_revenue, commission_rate,
	commission_amount, installment_total, net_payout, bookings_count, status, paid_at, created_at`

// Create relies on the unique constraint on (customer_id, settlement_period);
// a duplicate insert surfaces as ConflictError, never an overwrite.
func (r *settlementRepository) Create(ctx context.Context, s *domain.MonthlySettlement) error {
	query := `INSERT INTO fleet_settlements (customer_id, settlement_period, total_revenue,
		commission_rate, commission_amount, installment_total, net_payout, bookings_count, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW()) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, s.CustomerID, s.Period, s.TotalRevenue,
		s.CommissionRate, s.CommissionAmount, s.InstallmentTotal, s.NetPayout,
		s.BookingsCount, s.Status).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflictf("settlement", "settlement for %s already exists for period %s",
				s.CustomerID, s.Period.Format("2006-01"))
		}
		return &domain.DependencyError{Dependency: "database", Err: err}
	}
	return nil
}

func (r *settlementRepository) GetByID(ctx context.Context, id int64) (*domain.MonthlySettlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM fleet_settlements WHERE id = $1`
	s, err := scanSettlement(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "settlement", ID: fmt.Sprintf("%d", id)}
	}
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}
	return s, nil
}

func (r *settlementRepository) GetByCustomerPeriod(ctx context.Context, customerID string, period time.Time) (*domain.MonthlySettlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM fleet_settlements WHERE customer_id = $1 AND settlement_period = $2`
	s, err := scanSettlement(r.db.QueryRowContext(ctx, query, customerID, period))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}
	return s, nil
}

func (r *settlementRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.MonthlySettlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM fleet_settlements WHERE customer_id = $1 ORDER BY settlement_period DESC`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}
	defer rows.Close()

	var settlements []domain.MonthlySettlement
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, &domain.DependencyError{Dependency: "database", Err: err}
		}
		settlements = append(settlements, *s)
	}
	return settlements, rows.Err()
}

// MarkPaid is conditional on the pending status, so paying twice conflicts
// instead of moving paid_at.
func (r *settlementRepository) MarkPaid(ctx context.Context, id int64, paidAt time.Time) (*domain.MonthlySettlement, error) {
	query := `UPDATE fleet_settlements SET status = 'paid', paid_at = $1
		WHERE id = $2 AND status = 'pending' RETURNING ` + settlementColumns
	s, err := scanSettlement(r.db.QueryRowContext(ctx, query, paidAt, id))
	if errors.Is(err, sql.ErrNoRows) {
		existing, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, domain.Conflictf("settlement", "settlement %d is already %s", id, existing.Status)
	}
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}
	return s, nil
}

func scanSettlement(row rowScanner) (*domain.MonthlySettlement, error) {
	var s domain.MonthlySettlement
	var paidAt sql.NullTime
	if err := row.Scan(&s.ID, &s.CustomerID, &s.Period, &s.TotalRevenue, &s.CommissionRate,
		&s.CommissionAmount, &s.InstallmentTotal, &s.NetPayout, &s.BookingsCount,
		&s.Status, &paidAt, &s.CreatedAt); err != nil {
		return nil, err
	}
	if paidAt.Valid {
		s.PaidAt = &paidAt.Time
	}
	return &s, nil
}

// isUniqueViolation reports a Postgres unique constraint failure (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
