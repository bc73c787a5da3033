package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"fleetpay-backend/internal/domain"
)

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, id string) (*domain.FleetCustomer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FleetCustomer), args.Error(1)
}
func (m *MockCustomerRepo) ListFleetCustomers(ctx context.Context) ([]domain.FleetCustomer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.FleetCustomer), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Vehicle, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) CountByCustomer(ctx context.Context, customerID string) (int, error) {
	args := m.Called(ctx, customerID)
	return args.Int(0), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListRevenueForPeriod(ctx context.Context, customerID string, periodStart, periodEnd time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, customerID, periodStart, periodEnd)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListRevenueForVehiclePeriod(ctx context.Context, vehicleID string, periodStart, periodEnd time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, vehicleID, periodStart, periodEnd)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListRevenueForVehicleYear(ctx context.Context, vehicleID string, year int) ([]domain.Booking, error) {
	args := m.Called(ctx, vehicleID, year)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockLoanRepo
type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) Create(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) GetByConsolidationKey(ctx context.Context, key string) (*domain.Loan, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) ListActiveByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) ActiveInstallmentTotal(ctx context.Context, customerID string) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockLoanRepo) ActiveInstallmentTotalForVehicle(ctx context.Context, vehicleID string) (decimal.Decimal, error) {
	args := m.Called(ctx, vehicleID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockLoanRepo) Consolidate(ctx context.Context, customerID string, expectedIDs []int64, replacement *domain.Loan) error {
	args := m.Called(ctx, customerID, expectedIDs, replacement)
	return args.Error(0)
}
func (m *MockLoanRepo) ApplyPayment(ctx context.Context, payment *domain.LoanPayment, tolerance decimal.Decimal) (*domain.Loan, error) {
	args := m.Called(ctx, payment, tolerance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) MarkFeePaid(ctx context.Context, loanID int64, paidAt time.Time) error {
	args := m.Called(ctx, loanID, paidAt)
	return args.Error(0)
}
func (m *MockLoanRepo) ListPayments(ctx context.Context, loanID int64) ([]domain.LoanPayment, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).([]domain.LoanPayment), args.Error(1)
}

// MockSettlementRepo
type MockSettlementRepo struct {
	mock.Mock
}

func (m *MockSettlementRepo) Create(ctx context.Context, s *domain.MonthlySettlement) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockSettlementRepo) GetByID(ctx context.Context, id int64) (*domain.MonthlySettlement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlySettlement), args.Error(1)
}
func (m *MockSettlementRepo) GetByCustomerPeriod(ctx context.Context, customerID string, period time.Time) (*domain.MonthlySettlement, error) {
	args := m.Called(ctx, customerID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlySettlement), args.Error(1)
}
func (m *MockSettlementRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.MonthlySettlement, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.MonthlySettlement), args.Error(1)
}
func (m *MockSettlementRepo) MarkPaid(ctx context.Context, id int64, paidAt time.Time) (*domain.MonthlySettlement, error) {
	args := m.Called(ctx, id, paidAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlySettlement), args.Error(1)
}

// MockCheckoutRepo
type MockCheckoutRepo struct {
	mock.Mock
}

func (m *MockCheckoutRepo) Create(ctx context.Context, rec *domain.CheckoutRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *MockCheckoutRepo) GetByID(ctx context.Context, id int64) (*domain.CheckoutRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutRecord), args.Error(1)
}
func (m *MockCheckoutRepo) GetByBooking(ctx context.Context, bookingID string) (*domain.CheckoutRecord, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutRecord), args.Error(1)
}
func (m *MockCheckoutRepo) Approve(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockCheckoutRepo) Settle(ctx context.Context, rec *domain.CheckoutRecord) (bool, error) {
	args := m.Called(ctx, rec)
	return args.Bool(0), args.Error(1)
}

// MockFineRepo
type MockFineRepo struct {
	mock.Mock
}

func (m *MockFineRepo) ListUnpaidByBooking(ctx context.Context, bookingID string) ([]domain.Fine, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.Fine), args.Error(1)
}
func (m *MockFineRepo) MarkPaidByBooking(ctx context.Context, bookingID string, paidAt time.Time) (int64, error) {
	args := m.Called(ctx, bookingID, paidAt)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendSettlementStatement(ctx context.Context, email, name string, s *domain.MonthlySettlement) error {
	args := m.Called(ctx, email, name, s)
	return args.Error(0)
}
func (m *MockEmailService) SendCheckoutStatement(ctx context.Context, email string, rec *domain.CheckoutRecord) error {
	args := m.Called(ctx, email, rec)
	return args.Error(0)
}
func (m *MockEmailService) SendLoanNotice(ctx context.Context, email, name, subject, body string) error {
	args := m.Called(ctx, email, name, subject, body)
	return args.Error(0)
}
