package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fleetpay-backend/internal/domain"
)

type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*domain.FleetCustomer, error)
	// ListFleetCustomers returns every customer on a commission plan other
	// than none; input to the monthly settlement batch.
	ListFleetCustomers(ctx context.Context) ([]domain.FleetCustomer, error)
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Vehicle, error)
	CountByCustomer(ctx context.Context, customerID string) (int, error)
}

type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	// ListRevenueForPeriod returns bookings in revenue-counting statuses whose
	// date range intersects [periodStart, periodEnd).
	ListRevenueForPeriod(ctx context.Context, customerID string, periodStart, periodEnd time.Time) ([]domain.Booking, error)
	ListRevenueForVehiclePeriod(ctx context.Context, vehicleID string, periodStart, periodEnd time.Time) ([]domain.Booking, error)
	ListRevenueForVehicleYear(ctx context.Context, vehicleID string, year int) ([]domain.Booking, error)
}

type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id int64) (*domain.Loan, error)
	GetByConsolidationKey(ctx context.Context, key string) (*domain.Loan, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error)
	ListActiveByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error)
	// ActiveInstallmentTotal sums monthly installments across a customer's
	// active loans; zero when the customer has none.
	ActiveInstallmentTotal(ctx context.Context, customerID string) (decimal.Decimal, error)
	ActiveInstallmentTotalForVehicle(ctx context.Context, vehicleID string) (decimal.Decimal, error)

	// Consolidate cancels exactly the expected active loans and inserts the
	// replacement, all in one transaction. A mismatch between expectedIDs and
	// the customer's currently active loans aborts with a conflict so the
	// caller can retry against fresh state.
	Consolidate(ctx context.Context, customerID string, expectedIDs []int64, replacement *domain.Loan) error

	// ApplyPayment decrements the loan balance conditionally (never past zero
	// beyond tolerance), appends the payment row and flips the loan to
	// paid_off when the balance reaches zero, in one transaction.
	ApplyPayment(ctx context.Context, payment *domain.LoanPayment, tolerance decimal.Decimal) (*domain.Loan, error)

	MarkFeePaid(ctx context.Context, loanID int64, paidAt time.Time) error
	ListPayments(ctx context.Context, loanID int64) ([]domain.LoanPayment, error)
}

type SettlementRepository interface {
	// Create inserts one settlement row; a duplicate (customer, period) is
	// rejected by the storage layer and surfaces as a conflict.
	Create(ctx context.Context, s *domain.MonthlySettlement) error
	GetByID(ctx context.Context, id int64) (*domain.MonthlySettlement, error)
	GetByCustomerPeriod(ctx context.Context, customerID string, period time.Time) (*domain.MonthlySettlement, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.MonthlySettlement, error)
	// MarkPaid is conditional on status=pending; zero rows means the
	// settlement was already paid or does not exist.
	MarkPaid(ctx context.Context, id int64, paidAt time.Time) (*domain.MonthlySettlement, error)
}

type CheckoutRepository interface {
	Create(ctx context.Context, rec *domain.CheckoutRecord) error
	GetByID(ctx context.Context, id int64) (*domain.CheckoutRecord, error)
	GetByBooking(ctx context.Context, bookingID string) (*domain.CheckoutRecord, error)
	// Approve transitions calculated→approved; returns the number of rows
	// changed so the caller can distinguish a no-op replay.
	Approve(ctx context.Context, id int64) (bool, error)
	// Settle transitions approved→settled with the final fine/deposit totals;
	// conditional on the current status so a replay cannot double-charge.
	Settle(ctx context.Context, rec *domain.CheckoutRecord) (bool, error)
}

type FineRepository interface {
	ListUnpaidByBooking(ctx context.Context, bookingID string) ([]domain.Fine, error)
	MarkPaidByBooking(ctx context.Context, bookingID string, paidAt time.Time) (int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
}
