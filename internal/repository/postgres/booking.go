package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fleetpay-backend/internal/domain"
	"fleetpay-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, vehicle_id, customer_id, COALESCE(renter_email, ''), start_date, end_date,
	total_price, included_km, extra_km_price, status`

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "booking", ID: id}
	}
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}
	return b, nil
}

// Revenue queries count only completed/active bookings whose date range
// intersects the requested window.
const revenueFilter = ` AND status IN ('completed', 'active')
	AND start_date < $3 AND end_date >= $2`

func (r *bookingRepository) ListRevenueForPeriod(ctx context.Context, customerID string, periodStart, periodEnd time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE customer_id = $1` + revenueFilter + ` ORDER BY start_date`
	return r.listBookings(ctx, query, customerID, periodStart, periodEnd)
}

func (r *bookingRepository) ListRevenueForVehiclePeriod(ctx context.Context, vehicleID string, periodStart, periodEnd time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE vehicle_id = $1` + revenueFilter + ` ORDER BY start_date`
	return r.listBookings(ctx, query, vehicleID, periodStart, periodEnd)
}

func (r *bookingRepository) ListRevenueForVehicleYear(ctx context.Context, vehicleID string, year int) ([]domain.Booking, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)
	return r.ListRevenueForVehiclePeriod(ctx, vehicleID, yearStart, yearEnd)
}

func (r *bookingRepository) listBookings(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "database", Err: err}
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, &domain.DependencyError{Dependency: "database", Err: err}
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.VehicleID, &b.CustomerID, &b.RenterEmail, &b.StartDate,
		&b.EndDate, &b.TotalPrice, &b.IncludedKm, &b.ExtraKmPrice, &b.Status); err != nil {
		return nil, err
	}
	return &b, nil
}
