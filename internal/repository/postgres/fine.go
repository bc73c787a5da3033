package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetpay-backend/internal/domain"
	"fleetpay-backend/internal/repository"
)

type fineRepository struct {
	db *sql.DB
}

func NewFineRepository(db *sql.DB) repository.FineRepository {
	return &fineRepository{db: db}
}

func (r *fineRepository) ListUnpaidByBooking(ctx context.Context, bookingID string) ([]domain.Fine, error) {
	query := `SELECT id, booking_id, COALESCE(description, ''), amount, paid, paid_at, issued_at
		FROM booking_fines WHERE booking_id = $1 AND paid = false ORDER BY issued_at`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}
	defer rows.Close()

	var fines []domain.Fine
	for rows.Next() {
		var f domain.Fine
		var paidAt sql.NullTime
		if err := rows.Scan(&f.ID, &f.BookingID, &f.Description, &f.Amount, &f.Paid, &paidAt, &f.IssuedAt); err != nil {
			return nil, &domain.DependencyError{Dependency: "database", Err: err}
		}
		if paidAt.Valid {
			f.PaidAt = &paidAt.Time
		}
		fines = append(fines, f)
	}
	return fines, rows.Err()
}

func (r *fineRepository) MarkPaidByBooking(ctx context.Context, bookingID string, paidAt time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE booking_fines SET paid = true, paid_at = $1 WHERE booking_id = $2 AND paid = false`,
		paidAt, bookingID)
	if err != nil {
		return 0, &domain.DependencyError{Dependency: "database", Err: err}
	}
	n, _ := res.RowsAffected()
	return n, nil
}
