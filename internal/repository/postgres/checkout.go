package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fleetpay-backend/internal/domain"
	"fleetpay-backend/internal/repository"
)

type checkoutRepository struct {
	db *sql.DB
}

func NewCheckoutRepository(db *sql.DB) repository.CheckoutRepository {
	return &checkoutRepository{db: db}
}

const checkoutColumns = `id, booking_id, vehicle_id, km_driven, km_included, km_overage,
	km_overage_fee, fuel_start_percent, fuel_end_percent, fuel_missing_liters, fuel_fee,
	exterior_clean, interior_clean, exterior_cleaning_fee, interior_cleaning_fee,
	fines_total, total_extra_charges, deposit_refund, amount_due_from_renter,
	settlement_status, created_at, settled_at`

func (r *checkoutRepository) Create(ctx context.Context, rec *domain.CheckoutRecord) error {
	query := `INSERT INTO checkout_records (booking_id, vehicle_id, km_driven, km_included,
		km_overage, km_overage_fee, fuel_start_percent, fuel_end_percent, fuel_missing_liters,
		fuel_fee, exterior_clean, interior_clean, exterior_cleaning_fee, interior_cleaning_fee,
		fines_total, total_extra_charges, deposit_refund, amount_due_from_renter,
		settlement_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, NOW())
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, rec.BookingID, rec.VehicleID, rec.KmDriven,
		rec.KmIncluded, rec.KmOverage, rec.KmOverageFee, rec.FuelStartPercent, rec.FuelEndPercent,
		rec.FuelMissingLiters, rec.FuelFee, rec.ExteriorClean, rec.InteriorClean,
		rec.ExteriorCleaningFee, rec.InteriorCleaningFee, rec.FinesTotal, rec.TotalExtraCharges,
		rec.DepositRefund, rec.AmountDueFromRenter, rec.SettlementStatus).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflictf("checkout", "checkout record already exists for booking %s", rec.BookingID)
		}
		return &domain.DependencyError{Dependency: "database", Err: err}
	}
	return nil
}

func (r *checkoutRepository) GetByID(ctx context.Context, id int64) (*domain.CheckoutRecord, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkout_records WHERE id = $1`
	rec, err := scanCheckout(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "checkout record", ID: fmt.Sprintf("%d", id)}
	}
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}
	return rec, nil
}

func (r *checkoutRepository) GetByBooking(ctx context.Context, bookingID string) (*domain.CheckoutRecord, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkout_records WHERE booking_id = $1`
	rec, err := scanCheckout(r.db.QueryRowContext(ctx, query, bookingID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}
	return rec, nil
}

func (r *checkoutRepository) Approve(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE checkout_records SET settlement_status = 'approved' WHERE id = $1 AND settlement_status = 'calculated'`, id)
	if err != nil {
		return false, &domain.DependencyError{Dependency: "database", Err: err}
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *checkoutRepository) Settle(ctx context.Context, rec *domain.CheckoutRecord) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE checkout_records
		SET settlement_status = 'settled', fines_total = $1, total_extra_charges = $2,
		    deposit_refund = $3, amount_due_from_renter = $4, settled_at = $5
		WHERE id = $6 AND settlement_status = 'approved'`,
		rec.FinesTotal, rec.TotalExtraCharges, rec.DepositRefund, rec.AmountDueFromRenter,
		rec.SettledAt, rec.ID)
	if err != nil {
		return false, &domain.DependencyError{Dependency: "database", Err: err}
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func scanCheckout(row rowScanner) (*domain.CheckoutRecord, error) {
	var rec domain.CheckoutRecord
	var settledAt sql.NullTime
	if err := row.Scan(&rec.ID, &rec.BookingID, &rec.VehicleID, &rec.KmDriven, &rec.KmIncluded,
		&rec.KmOverage, &rec.KmOverageFee, &rec.FuelStartPercent, &rec.FuelEndPercent,
		&rec.FuelMissingLiters, &rec.FuelFee, &rec.ExteriorClean, &rec.InteriorClean,
		&rec.ExteriorCleaningFee, &rec.InteriorCleaningFee, &rec.FinesTotal,
		&rec.TotalExtraCharges, &rec.DepositRefund, &rec.AmountDueFromRenter,
		&rec.SettlementStatus, &rec.CreatedAt, &settledAt); err != nil {
		return nil, err
	}
	if settledAt.Valid {
		rec.SettledAt = &settledAt.Time
	}
	return &rec, nil
}
