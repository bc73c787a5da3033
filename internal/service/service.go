package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fleetpay-backend/internal/domain"
)

type CommissionService interface {
	// ResolveRate returns the live billing rate for a customer
	// (override-then-plan). Unknown plans resolve to 0% with a logged
	// warning, never an arbitrary charge.
	ResolveRate(ctx context.Context, customerID string) (decimal.Decimal, error)
}

type LoanService interface {
	Originate(ctx context.Context, customerID string, vehicleID *string, amount decimal.Decimal, description string) (*domain.Loan, error)
	// Consolidate cancels all of the customer's active loans and originates
	// one replacement sized sum(remaining balances) + newAmount + setup fee.
	// requestID keys the operation; replays with the same requestID return
	// the existing replacement loan.
	Consolidate(ctx context.Context, customerID string, newAmount decimal.Decimal, description, requestID string) (*domain.Loan, error)
	RecordPayment(ctx context.Context, loanID int64, amount decimal.Decimal, paymentType domain.LoanPaymentType, notes string) (*domain.Loan, *domain.LoanPayment, error)
	MarkFeePaid(ctx context.Context, loanID int64) error
	ListLoans(ctx context.Context, customerID string) ([]domain.Loan, error)
	ListPayments(ctx context.Context, loanID int64) ([]domain.LoanPayment, error)
}

// CheckoutInput carries the staff-confirmed readings for one vehicle return.
type CheckoutInput struct {
	BookingID        string
	CheckinOdometer  int64
	CheckoutOdometer int64
	FuelStartPercent decimal.Decimal
	FuelEndPercent   decimal.Decimal
	ExteriorClean    bool
	InteriorClean    bool
}

type CheckoutService interface {
	Compute(ctx context.Context, in CheckoutInput) (*domain.CheckoutRecord, error)
	// Approve transitions calculated→approved; replaying on an approved or
	// settled record is a no-op.
	Approve(ctx context.Context, id int64) (*domain.CheckoutRecord, error)
	// Settle folds unpaid fines into the extra charges, splits against the
	// deposit, marks fines paid and dispatches the statement. One-way and
	// idempotent; a replay never double-charges.
	Settle(ctx context.Context, id int64) (*domain.CheckoutRecord, error)
}

type SettlementService interface {
	// ComputeMonthly produces exactly one settlement row per (customer,
	// period); a period that already has a row is a conflict.
	ComputeMonthly(ctx context.Context, customerID string, period time.Time) (*domain.MonthlySettlement, error)
	MarkPaid(ctx context.Context, settlementID int64) (*domain.MonthlySettlement, error)
	List(ctx context.Context, customerID string) ([]domain.MonthlySettlement, error)
	// VehicleEconomy builds the per-vehicle reporting rows for one period
	// using the size-tiered commission scale.
	VehicleEconomy(ctx context.Context, customerID string, period time.Time) ([]domain.VehicleEconomy, error)
}

type GuaranteeService interface {
	Status(ctx context.Context, vehicleID string, year int) (*domain.GuaranteeStatus, error)
}

// EmailService dispatches statements and notices. Failures are logged and
// retried out-of-band; they never roll back the financial mutation that
// triggered them.
type EmailService interface {
	SendSettlementStatement(ctx context.Context, email, name string, s *domain.MonthlySettlement) error
	SendCheckoutStatement(ctx context.Context, email string, rec *domain.CheckoutRecord) error
	SendLoanNotice(ctx context.Context, email, name, subject, body string) error
}
