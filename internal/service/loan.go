package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fleetpay-backend/internal/domain"
	"fleetpay-backend/internal/logger"
	"fleetpay-backend/internal/pricing"
	"fleetpay-backend/internal/repository"
)

// consolidationNamespace seeds the deterministic consolidation keys so a
// retried request maps to the same replacement loan.
var consolidationNamespace = uuid.MustParse("b1f4a0c2-7c39-4a67-9a51-2f8a34d90d11")

// LoanParams are the ledger's configured limits.
type LoanParams struct {
	MinAmount        decimal.Decimal
	SetupFee         decimal.Decimal
	MinMonths        int
	PaymentTolerance decimal.Decimal
}

type loanService struct {
	loanRepo         repository.LoanRepository
	customerRepo     repository.CustomerRepository
	notificationRepo repository.NotificationRepository
	emailSvc         EmailService
	params           LoanParams
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	customerRepo repository.CustomerRepository,
	notificationRepo repository.NotificationRepository,
	emailSvc EmailService,
	params LoanParams,
) LoanService {
	return &loanService{
		loanRepo:         loanRepo,
		customerRepo:     customerRepo,
		notificationRepo: notificationRepo,
		emailSvc:         emailSvc,
		params:           params,
	}
}

func (s *loanService) Originate(ctx context.Context, customerID string, vehicleID *string, amount decimal.Decimal, description string) (*domain.Loan, error) {
	logger.EnterMethod("loanService.Originate", "customerID", customerID, "amount", amount)

	if amount.LessThan(s.params.MinAmount) {
		err := domain.Validationf("amount", "amount must be at least %s", s.params.MinAmount)
		logger.ExitMethodWithError("loanService.Originate", err, "customerID", customerID)
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		logger.ExitMethodWithError("loanService.Originate", err, "customerID", customerID)
		return nil, err
	}

	months := pricing.RepaymentMonths(customer.ContractMonthsRemaining, s.params.MinMonths)
	loan := &domain.Loan{
		CustomerID:         customerID,
		VehicleID:          vehicleID,
		Description:        description,
		OriginalAmount:     amount,
		RemainingBalance:   amount,
		MonthlyInstallment: pricing.MonthlyInstallment(amount, s.params.SetupFee, months),
		SetupFee:           s.params.SetupFee,
		RemainingMonths:    months,
		Status:             domain.LoanStatusActive,
		StartDate:          time.Now().UTC(),
	}
	if err := s.loanRepo.Create(ctx, loan); err != nil {
		logger.ExitMethodWithError("loanService.Originate", err, "customerID", customerID)
		return nil, err
	}

	s.notifyLoan(ctx, customer, "Repair financing approved",
		fmt.Sprintf("A repair loan of %s was set up for %s: installments of %s over %d months.",
			loan.OriginalAmount, customer.CompanyName, loan.MonthlyInstallment, loan.RemainingMonths),
		loan)

	logger.ExitMethod("loanService.Originate", "loanID", loan.ID, "installment", loan.MonthlyInstallment)
	return loan, nil
}

func (s *loanService) Consolidate(ctx context.Context, customerID string, newAmount decimal.Decimal, description, requestID string) (*domain.Loan, error) {
	logger.EnterMethod("loanService.Consolidate", "customerID", customerID, "newAmount", newAmount, "requestID", requestID)

	if newAmount.LessThan(s.params.MinAmount) {
		err := domain.Validationf("new_amount", "amount must be at least %s", s.params.MinAmount)
		logger.ExitMethodWithError("loanService.Consolidate", err, "customerID", customerID)
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		logger.ExitMethodWithError("loanService.Consolidate", err, "customerID", customerID)
		return nil, err
	}

	key := uuid.NewSHA1(consolidationNamespace, []byte(customerID+":"+requestID)).String()
	if existing, err := s.loanRepo.GetByConsolidationKey(ctx, key); err != nil {
		logger.ExitMethodWithError("loanService.Consolidate", err, "customerID", customerID)
		return nil, err
	} else if existing != nil {
		// Idempotent replay of a completed consolidation.
		logger.ExitMethod("loanService.Consolidate", "loanID", existing.ID, "replayed", true)
		return existing, nil
	}

	active, err := s.loanRepo.ListActiveByCustomer(ctx, customerID)
	if err != nil {
		logger.ExitMethodWithError("loanService.Consolidate", err, "customerID", customerID)
		return nil, err
	}

	existingDebt := decimal.Zero
	expectedIDs := make([]int64, 0, len(active))
	for _, l := range active {
		existingDebt = existingDebt.Add(l.RemainingBalance)
		expectedIDs = append(expectedIDs, l.ID)
	}

	months := pricing.RepaymentMonths(customer.ContractMonthsRemaining, s.params.MinMonths)
	totalDebt := existingDebt.Add(newAmount).Add(s.params.SetupFee)
	replacement := &domain.Loan{
		CustomerID:         customerID,
		Description:        description,
		OriginalAmount:     totalDebt,
		RemainingBalance:   totalDebt,
		MonthlyInstallment: pricing.MonthlyInstallment(existingDebt.Add(newAmount), s.params.SetupFee, months),
		SetupFee:           s.params.SetupFee,
		RemainingMonths:    months,
		Status:             domain.LoanStatusActive,
		ConsolidationKey:   &key,
		StartDate:          time.Now().UTC(),
	}

	if err := s.loanRepo.Consolidate(ctx, customerID, expectedIDs, replacement); err != nil {
		logger.ExitMethodWithError("loanService.Consolidate", err, "customerID", customerID)
		return nil, err
	}

	s.notifyLoan(ctx, customer, "Loans consolidated",
		fmt.Sprintf("%d loans were consolidated into one of %s with installments of %s over %d months.",
			len(active), replacement.OriginalAmount, replacement.MonthlyInstallment, months),
		replacement)

	logger.ExitMethod("loanService.Consolidate", "loanID", replacement.ID,
		"cancelled", len(expectedIDs), "originalAmount", replacement.OriginalAmount)
	return replacement, nil
}

func (s *loanService) RecordPayment(ctx context.Context, loanID int64, amount decimal.Decimal, paymentType domain.LoanPaymentType, notes string) (*domain.Loan, *domain.LoanPayment, error) {
	logger.EnterMethod("loanService.RecordPayment", "loanID", loanID, "amount", amount, "type", paymentType)

	if !amount.IsPositive() {
		err := domain.Validationf("amount", "payment amount must be positive")
		logger.ExitMethodWithError("loanService.RecordPayment", err, "loanID", loanID)
		return nil, nil, err
	}

	payment := &domain.LoanPayment{
		LoanID:      loanID,
		PaymentDate: time.Now().UTC(),
		Amount:      amount,
		Type:        paymentType,
		Notes:       notes,
	}
	loan, err := s.loanRepo.ApplyPayment(ctx, payment, s.params.PaymentTolerance)
	if err != nil {
		logger.ExitMethodWithError("loanService.RecordPayment", err, "loanID", loanID)
		return nil, nil, err
	}

	logger.ExitMethod("loanService.RecordPayment", "loanID", loanID,
		"remainingBalance", loan.RemainingBalance, "status", loan.Status)
	return loan, payment, nil
}

func (s *loanService) MarkFeePaid(ctx context.Context, loanID int64) error {
	logger.EnterMethod("loanService.MarkFeePaid", "loanID", loanID)
	if err := s.loanRepo.MarkFeePaid(ctx, loanID, time.Now().UTC()); err != nil {
		logger.ExitMethodWithError("loanService.MarkFeePaid", err, "loanID", loanID)
		return err
	}
	logger.ExitMethod("loanService.MarkFeePaid", "loanID", loanID)
	return nil
}

func (s *loanService) ListLoans(ctx context.Context, customerID string) ([]domain.Loan, error) {
	return s.loanRepo.ListByCustomer(ctx, customerID)
}

func (s *loanService) ListPayments(ctx context.Context, loanID int64) ([]domain.LoanPayment, error) {
	return s.loanRepo.ListPayments(ctx, loanID)
}

// notifyLoan writes the in-app record and sends the email best-effort; a
// dispatch failure never rolls back the ledger mutation.
func (s *loanService) notifyLoan(ctx context.Context, customer *domain.FleetCustomer, title, message string, loan *domain.Loan) {
	note := &domain.Notification{
		CustomerID: customer.ID,
		Title:      title,
		Message:    message,
		Attributes: map[string]string{
			"topic":   "fleet_loan",
			"loan_id": fmt.Sprintf("%d", loan.ID),
		},
	}
	if err := s.notificationRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to create loan notification", "loan_id", loan.ID, "error", err)
	}
	if err := s.emailSvc.SendLoanNotice(ctx, customer.Email, customer.Name, title, message); err != nil {
		logger.Error("Failed to send loan notice", "loan_id", loan.ID, "error", err)
	}
}
