package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fleetpay-backend/internal/domain"
)

func testLoanParams() LoanParams {
	return LoanParams{
		MinAmount:        decimal.NewFromInt(500),
		SetupFee:         decimal.NewFromInt(300),
		MinMonths:        3,
		PaymentTolerance: decimal.NewFromFloat(0.01),
	}
}

func TestLoanService_Originate(t *testing.T) {
	ctx := context.Background()
	customer := &domain.FleetCustomer{
		ID: "cust-1", Email: "owner@fleet.no", Name: "Kari", CompanyName: "Fleet AS",
		Plan: domain.CommissionPlanBasic, ContractMonthsRemaining: 8,
	}

	t.Run("Success", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		customerRepo := new(MockCustomerRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		svc := NewLoanService(loanRepo, customerRepo, noteRepo, emailSvc, testLoanParams())

		customerRepo.On("GetByID", ctx, "cust-1").Return(customer, nil)
		loanRepo.On("Create", ctx, mock.AnythingOfType("*domain.Loan")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Loan).ID = 7
		}).Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
		emailSvc.On("SendLoanNotice", ctx, "owner@fleet.no", "Kari", mock.Anything, mock.Anything).Return(nil)

		loan, err := svc.Originate(ctx, "cust-1", nil, decimal.NewFromInt(5000), "engine repair")
		assert.NoError(t, err)
		assert.Equal(t, int64(7), loan.ID)
		assert.Equal(t, domain.LoanStatusActive, loan.Status)
		assert.Equal(t, 8, loan.RemainingMonths)
		assert.True(t, loan.OriginalAmount.Equal(decimal.NewFromInt(5000)))
		assert.True(t, loan.RemainingBalance.Equal(decimal.NewFromInt(5000)))
		// ceil((5000+300)/8) = 663
		assert.True(t, loan.MonthlyInstallment.Equal(decimal.NewFromInt(663)))
		loanRepo.AssertExpectations(t)
	})

	t.Run("BelowMinimum", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewLoanService(loanRepo, customerRepo, new(MockNotificationRepo), new(MockEmailService), testLoanParams())

		_, err := svc.Originate(ctx, "cust-1", nil, decimal.NewFromInt(499), "small fix")
		assert.True(t, domain.IsValidation(err))
		loanRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ShortContractGetsMinimumMonths", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		customerRepo := new(MockCustomerRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		svc := NewLoanService(loanRepo, customerRepo, noteRepo, emailSvc, testLoanParams())

		short := &domain.FleetCustomer{ID: "cust-2", Email: "x@fleet.no", Name: "Ola", ContractMonthsRemaining: 1}
		customerRepo.On("GetByID", ctx, "cust-2").Return(short, nil)
		loanRepo.On("Create", ctx, mock.AnythingOfType("*domain.Loan")).Return(nil)
		noteRepo.On("Create", ctx, mock.Anything).Return(nil)
		emailSvc.On("SendLoanNotice", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		loan, err := svc.Originate(ctx, "cust-2", nil, decimal.NewFromInt(600), "tires")
		assert.NoError(t, err)
		assert.Equal(t, 3, loan.RemainingMonths)
		// ceil((600+300)/3) = 300
		assert.True(t, loan.MonthlyInstallment.Equal(decimal.NewFromInt(300)))
	})

	t.Run("EmailFailureDoesNotFailOrigination", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		customerRepo := new(MockCustomerRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		svc := NewLoanService(loanRepo, customerRepo, noteRepo, emailSvc, testLoanParams())

		customerRepo.On("GetByID", ctx, "cust-1").Return(customer, nil)
		loanRepo.On("Create", ctx, mock.AnythingOfType("*domain.Loan")).Return(nil)
		noteRepo.On("Create", ctx, mock.Anything).Return(nil)
		emailSvc.On("SendLoanNotice", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("sendgrid down"))

		loan, err := svc.Originate(ctx, "cust-1", nil, decimal.NewFromInt(5000), "gearbox")
		assert.NoError(t, err)
		assert.NotNil(t, loan)
	})
}

func TestLoanService_Consolidate(t *testing.T) {
	ctx := context.Background()
	customer := &domain.FleetCustomer{
		ID: "cust-1", Email: "owner@fleet.no", Name: "Kari", CompanyName: "Fleet AS",
		ContractMonthsRemaining: 2,
	}

	t.Run("ConservesDebt", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		customerRepo := new(MockCustomerRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		svc := NewLoanService(loanRepo, customerRepo, noteRepo, emailSvc, testLoanParams())

		customerRepo.On("GetByID", ctx, "cust-1").Return(customer, nil)
		loanRepo.On("GetByConsolidationKey", ctx, mock.AnythingOfType("string")).Return(nil, nil)
		active := []domain.Loan{
			{ID: 1, RemainingBalance: decimal.NewFromInt(1200)},
			{ID: 2, RemainingBalance: decimal.NewFromInt(800)},
		}
		loanRepo.On("ListActiveByCustomer", ctx, "cust-1").Return(active, nil)
		loanRepo.On("Consolidate", ctx, "cust-1", []int64{1, 2}, mock.AnythingOfType("*domain.Loan")).
			Run(func(args mock.Arguments) {
				args.Get(3).(*domain.Loan).ID = 9
			}).Return(nil)
		noteRepo.On("Create", ctx, mock.Anything).Return(nil)
		emailSvc.On("SendLoanNotice", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		loan, err := svc.Consolidate(ctx, "cust-1", decimal.NewFromInt(2000), "fleet refresh", "req-42")
		assert.NoError(t, err)
		// 1200 + 800 + 2000 + 300 setup fee
		assert.True(t, loan.OriginalAmount.Equal(decimal.NewFromInt(4300)))
		assert.True(t, loan.RemainingBalance.Equal(decimal.NewFromInt(4300)))
		assert.Equal(t, 3, loan.RemainingMonths)
		// ceil(4300/3) = 1434
		assert.True(t, loan.MonthlyInstallment.Equal(decimal.NewFromInt(1434)))
		assert.NotNil(t, loan.ConsolidationKey)
		loanRepo.AssertExpectations(t)
	})

	t.Run("ReplaySameRequestIDReturnsExistingLoan", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewLoanService(loanRepo, customerRepo, new(MockNotificationRepo), new(MockEmailService), testLoanParams())

		existing := &domain.Loan{ID: 9, OriginalAmount: decimal.NewFromInt(4300)}
		customerRepo.On("GetByID", ctx, "cust-1").Return(customer, nil)
		loanRepo.On("GetByConsolidationKey", ctx, mock.AnythingOfType("string")).Return(existing, nil)

		loan, err := svc.Consolidate(ctx, "cust-1", decimal.NewFromInt(2000), "fleet refresh", "req-42")
		assert.NoError(t, err)
		assert.Equal(t, int64(9), loan.ID)
		loanRepo.AssertNotCalled(t, "Consolidate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ActiveSetChangedSurfacesConflict", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewLoanService(loanRepo, customerRepo, new(MockNotificationRepo), new(MockEmailService), testLoanParams())

		customerRepo.On("GetByID", ctx, "cust-1").Return(customer, nil)
		loanRepo.On("GetByConsolidationKey", ctx, mock.AnythingOfType("string")).Return(nil, nil)
		loanRepo.On("ListActiveByCustomer", ctx, "cust-1").
			Return([]domain.Loan{{ID: 1, RemainingBalance: decimal.NewFromInt(1200)}}, nil)
		loanRepo.On("Consolidate", ctx, "cust-1", []int64{1}, mock.Anything).
			Return(domain.Conflictf("loans", "active loan set changed during consolidation, retry"))

		_, err := svc.Consolidate(ctx, "cust-1", decimal.NewFromInt(2000), "fleet refresh", "req-43")
		assert.True(t, domain.IsConflict(err))
	})
}

func TestLoanService_RecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		svc := NewLoanService(loanRepo, new(MockCustomerRepo), new(MockNotificationRepo), new(MockEmailService), testLoanParams())

		paid := &domain.Loan{ID: 3, RemainingBalance: decimal.Zero, Status: domain.LoanStatusPaidOff}
		loanRepo.On("ApplyPayment", ctx, mock.AnythingOfType("*domain.LoanPayment"), mock.Anything).Return(paid, nil)

		loan, payment, err := svc.RecordPayment(ctx, 3, decimal.NewFromInt(663), domain.LoanPaymentTypeInstallment, "")
		assert.NoError(t, err)
		assert.Equal(t, domain.LoanStatusPaidOff, loan.Status)
		assert.Equal(t, int64(3), payment.LoanID)
		assert.True(t, payment.Amount.Equal(decimal.NewFromInt(663)))
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		svc := NewLoanService(loanRepo, new(MockCustomerRepo), new(MockNotificationRepo), new(MockEmailService), testLoanParams())

		_, _, err := svc.RecordPayment(ctx, 3, decimal.Zero, domain.LoanPaymentTypeInstallment, "")
		assert.True(t, domain.IsValidation(err))
		loanRepo.AssertNotCalled(t, "ApplyPayment", mock.Anything, mock.Anything, mock.Anything)
	})
}
