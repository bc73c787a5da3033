package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fleetpay-backend/internal/domain"
	"fleetpay-backend/internal/repository"
)

type loanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) repository.LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, customer_id, vehicle_id, COALESCE(description, ''), original_amount,
	remaining_balance, monthly_installment, setup_fee, remaining_months, status,
	consolidation_key, platform_fee_paid_at, start_date, created_at`

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `INSERT INTO fleet_loans (customer_id, vehicle_id, description, original_amount,
		remaining_balance, monthly_installment, setup_fee, remaining_months, status,
		consolidation_key, start_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW()) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, loan.CustomerID, loan.VehicleID, loan.Description,
		loan.OriginalAmount, loan.RemainingBalance, loan.MonthlyInstallment, loan.SetupFee,
		loan.RemainingMonths, loan.Status, loan.ConsolidationKey, loan.StartDate).
		Scan(&loan.ID, &loan.CreatedAt)
	if err != nil {
		return &domain.DependencyError{Dependency: "database", Err: err}
	}
	return nil
}

func (r *loanRepository) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM fleet_loans WHERE id = $1`
	loan, err := scanLoan(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "loan", ID: fmt.Sprintf("%d", id)}
	}
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}
	return loan, nil
}

func (r *loanRepository) GetByConsolidationKey(ctx context.Context, key string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM fleet_loans WHERE consolidation_key = $1`
	loan, err := scanLoan(r.db.QueryRowContext(ctx, query, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}
	return loan, nil
}

func (r *loanRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM fleet_loans WHERE customer_id = $1 ORDER BY created_at DESC`
	return r.listLoans(ctx, query, customerID)
}

func (r *loanRepository) ListActiveByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM fleet_loans WHERE customer_id = $1 AND status = 'active' ORDER BY created_at`
	return r.listLoans(ctx, query, customerID)
}

func (r *loanRepository) ActiveInstallmentTotal(ctx context.Context, customerID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(monthly_installment), 0) FROM fleet_loans WHERE customer_id = $1 AND status = 'active'`
	if err := r.db.QueryRowContext(ctx, query, customerID).Scan(&total); err != nil {
		return decimal.Zero, &domain.DependencyError{Dependency: "database", Err: err}
	}
	return total, nil
}

func (r *loanRepository) ActiveInstallmentTotalForVehicle(ctx context.Context, vehicleID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(monthly_installment), 0) FROM fleet_loans WHERE vehicle_id = $1 AND status = 'active'`
	if err := r.db.QueryRowContext(ctx, query, vehicleID).Scan(&total); err != nil {
		return decimal.Zero, &domain.DependencyError{Dependency: "database", Err: err}
	}
	return total, nil
}

// Consolidate cancels the expected active loans and inserts the replacement
// in one transaction. The customer's active loan rows are locked FOR UPDATE,
// so two concurrent consolidations serialize and the loser sees a mismatched
// loan set.
func (r *loanRepository) Consolidate(ctx context.Context, customerID string, expectedIDs []int64, replacement *domain.Loan) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.DependencyError{Dependency: "database", Err: err}
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM fleet_loans WHERE customer_id = $1 AND status = 'active' FOR UPDATE`, customerID)
	if err != nil {
		return &domain.DependencyError{Dependency: "database", Err: err}
	}
	current := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return &domain.DependencyError{Dependency: "database", Err: err}
		}
		current[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return &domain.DependencyError{Dependency: "database", Err: err}
	}

	if len(current) != len(expectedIDs) {
		return domain.Conflictf("loans", "active loan set changed during consolidation, retry")
	}
	for _, id := range expectedIDs {
		if !current[id] {
			return domain.Conflictf("loans", "active loan set changed during consolidation, retry")
		}
	}

	if len(expectedIDs) > 0 {
		res, err := tx.ExecContext(ctx,
			`UPDATE fleet_loans SET status = 'cancelled' WHERE customer_id = $1 AND status = 'active'`, customerID)
		if err != nil {
			return &domain.DependencyError{Dependency: "database", Err: err}
		}
		if n, _ := res.RowsAffected(); n != int64(len(expectedIDs)) {
			return domain.Conflictf("loans", "active loan set changed during consolidation, retry")
		}
	}

	err = tx.QueryRowContext(ctx, `INSERT INTO fleet_loans (customer_id, vehicle_id, description,
		original_amount, remaining_balance, monthly_installment, setup_fee, remaining_months,
		status, consolidation_key, start_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW()) RETURNING id, created_at`,
		replacement.CustomerID, replacement.VehicleID, replacement.Description,
		replacement.OriginalAmount, replacement.RemainingBalance, replacement.MonthlyInstallment,
		replacement.SetupFee, replacement.RemainingMonths, replacement.Status,
		replacement.ConsolidationKey, replacement.StartDate).
		Scan(&replacement.ID, &replacement.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflictf("loans", "consolidation already performed")
		}
		return &domain.DependencyError{Dependency: "database", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &domain.DependencyError{Dependency: "database", Err: err}
	}
	return nil
}

// ApplyPayment performs the conditional balance decrement, appends the
// payment row and flips paid_off loans, all in one transaction.
func (r *loanRepository) ApplyPayment(ctx context.Context, payment *domain.LoanPayment, tolerance decimal.Decimal) (*domain.Loan, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}
	defer tx.Rollback()

	query := `UPDATE fleet_loans
		SET remaining_balance = CASE WHEN remaining_balance - $1 <= $2 THEN 0 ELSE remaining_balance - $1 END,
		    status = CASE WHEN remaining_balance - $1 <= $2 THEN 'paid_off' ELSE status END
		WHERE id = $3 AND status = 'active' AND remaining_balance >= $1 - $2
		RETURNING ` + loanColumns
	loan, err := scanLoan(tx.QueryRowContext(ctx, query, payment.Amount, tolerance, payment.LoanID))
	if errors.Is(err, sql.ErrNoRows) {
		// Distinguish a missing/inactive loan from an overpayment.
		var status domain.LoanStatus
		var balance decimal.Decimal
		probeErr := tx.QueryRowContext(ctx,
			`SELECT status, remaining_balance FROM fleet_loans WHERE id = $1`, payment.LoanID).
			Scan(&status, &balance)
		if errors.Is(probeErr, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "loan", ID: fmt.Sprintf("%d", payment.LoanID)}
		}
		if probeErr != nil {
			return nil, &domain.DependencyError{Dependency: "database", Err: probeErr}
		}
		if status != domain.LoanStatusActive {
			return nil, domain.Validationf("loan", "loan is %s, payments can only be recorded on active loans", status)
		}
		return nil, domain.Validationf("amount",
			"payment %s exceeds remaining balance %s", payment.Amount, balance)
	}
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}

	err = tx.QueryRowContext(ctx, `INSERT INTO fleet_loan_payments (loan_id, payment_date, amount, payment_type, notes)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		payment.LoanID, payment.PaymentDate, payment.Amount, payment.Type, payment.Notes).
		Scan(&payment.ID)
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}
	return loan, nil
}

func (r *loanRepository) MarkFeePaid(ctx context.Context, loanID int64, paidAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE fleet_loans SET platform_fee_paid_at = $1 WHERE id = $2 AND platform_fee_paid_at IS NULL`,
		paidAt, loanID)
	if err != nil {
		return &domain.DependencyError{Dependency: "database", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM fleet_loans WHERE id = $1)`, loanID).Scan(&exists); err != nil {
			return &domain.DependencyError{Dependency: "database", Err: err}
		}
		if !exists {
			return &domain.NotFoundError{Resource: "loan", ID: fmt.Sprintf("%d", loanID)}
		}
		// Already stamped; the flag is a one-way bookkeeping mark.
	}
	return nil
}

func (r *loanRepository) ListPayments(ctx context.Context, loanID int64) ([]domain.LoanPayment, error) {
	query := `SELECT id, loan_id, payment_date, amount, payment_type, COALESCE(notes, '')
		FROM fleet_loan_payments WHERE loan_id = $1 ORDER BY payment_date, id`
	rows, err := r.db.QueryContext(ctx, query, loanID)
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}
	defer rows.Close()

	var payments []domain.LoanPayment
	for rows.Next() {
		var p domain.LoanPayment
		if err := rows.Scan(&p.ID, &p.LoanID, &p.PaymentDate, &p.Amount, &p.Type, &p.Notes); err != nil {
			return nil, &domain.DependencyError{Dependency: "database", Err: err}
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *loanRepository) listLoans(ctx context.Context, query string, args ...any) ([]domain.Loan, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, &domain.DependencyError{Dependency: "database", Err: err}
		}
		loans = append(loans, *loan)
	}
	return loans, rows.Err()
}

func scanLoan(row rowScanner) (*domain.Loan, error) {
	var loan domain.Loan
	var vehicleID, key sql.NullString
	var feePaidAt sql.NullTime
	if err := row.Scan(&loan.ID, &loan.CustomerID, &vehicleID, &loan.Description,
		&loan.OriginalAmount, &loan.RemainingBalance, &loan.MonthlyInstallment, &loan.SetupFee,
		&loan.RemainingMonths, &loan.Status, &key, &feePaidAt, &loan.StartDate, &loan.CreatedAt); err != nil {
		return nil, err
	}
	if vehicleID.Valid {
		loan.VehicleID = &vehicleID.String
	}
	if key.Valid {
		loan.ConsolidationKey = &key.String
	}
	if feePaidAt.Valid {
		loan.PlatformFeePaidAt = &feePaidAt.Time
	}
	return &loan, nil
}
