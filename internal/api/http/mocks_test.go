package http

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"fleetpay-backend/internal/domain"
	"fleetpay-backend/internal/service"
)

// MockCommissionService
type MockCommissionService struct {
	mock.Mock
}

func (m *MockCommissionService) ResolveRate(ctx context.Context, customerID string) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockLoanService
type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) Originate(ctx context.Context, customerID string, vehicleID *string, amount decimal.Decimal, description string) (*domain.Loan, error) {
	args := m.Called(ctx, customerID, vehicleID, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) Consolidate(ctx context.Context, customerID string, newAmount decimal.Decimal, description, requestID string) (*domain.Loan, error) {
	args := m.Called(ctx, customerID, newAmount, description, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) RecordPayment(ctx context.Context, loanID int64, amount decimal.Decimal, paymentType domain.LoanPaymentType, notes string) (*domain.Loan, *domain.LoanPayment, error) {
	args := m.Called(ctx, loanID, amount, paymentType, notes)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Loan), args.Get(1).(*domain.LoanPayment), args.Error(2)
}
func (m *MockLoanService) MarkFeePaid(ctx context.Context, loanID int64) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}
func (m *MockLoanService) ListLoans(ctx context.Context, customerID string) ([]domain.Loan, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanService) ListPayments(ctx context.Context, loanID int64) ([]domain.LoanPayment, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).([]domain.LoanPayment), args.Error(1)
}

// MockCheckoutService
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Compute(ctx context.Context, in service.CheckoutInput) (*domain.CheckoutRecord, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutRecord), args.Error(1)
}
func (m *MockCheckoutService) Approve(ctx context.Context, id int64) (*domain.CheckoutRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutRecord), args.Error(1)
}
func (m *MockCheckoutService) Settle(ctx context.Context, id int64) (*domain.CheckoutRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutRecord), args.Error(1)
}

// MockSettlementService
type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) ComputeMonthly(ctx context.Context, customerID string, period time.Time) (*domain.MonthlySettlement, error) {
	args := m.Called(ctx, customerID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlySettlement), args.Error(1)
}
func (m *MockSettlementService) MarkPaid(ctx context.Context, settlementID int64) (*domain.MonthlySettlement, error) {
	args := m.Called(ctx, settlementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlySettlement), args.Error(1)
}
func (m *MockSettlementService) List(ctx context.Context, customerID string) ([]domain.MonthlySettlement, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.MonthlySettlement), args.Error(1)
}
func (m *MockSettlementService) VehicleEconomy(ctx context.Context, customerID string, period time.Time) ([]domain.VehicleEconomy, error) {
	args := m.Called(ctx, customerID, period)
	return args.Get(0).([]domain.VehicleEconomy), args.Error(1)
}

// MockGuaranteeService
type MockGuaranteeService struct {
	mock.Mock
}

func (m *MockGuaranteeService) Status(ctx context.Context, vehicleID string, year int) (*domain.GuaranteeStatus, error) {
	args := m.Called(ctx, vehicleID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuaranteeStatus), args.Error(1)
}
