package service

import (
	"context"

	"github.com/shopspring/decimal"

	"fleetpay-backend/internal/domain"
	"fleetpay-backend/internal/logger"
	"fleetpay-backend/internal/pricing"
	"fleetpay-backend/internal/repository"
)

type commissionService struct {
	customerRepo repository.CustomerRepository
}

func NewCommissionService(customerRepo repository.CustomerRepository) CommissionService {
	return &commissionService{customerRepo: customerRepo}
}

func (s *commissionService) ResolveRate(ctx context.Context, customerID string) (decimal.Decimal, error) {
	logger.EnterMethod("commissionService.ResolveRate", "customerID", customerID)

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		logger.ExitMethodWithError("commissionService.ResolveRate", err, "customerID", customerID)
		return decimal.Zero, err
	}

	rate := resolveBillingRate(customer)
	logger.ExitMethod("commissionService.ResolveRate", "customerID", customerID, "rate", rate)
	return rate, nil
}

// resolveBillingRate applies the override-then-plan rule shared by the
// commission preview and the monthly settlement calculator. The size-tiered
// scale never reaches live billing.
func resolveBillingRate(customer *domain.FleetCustomer) decimal.Decimal {
	rate, known := pricing.ResolveCommissionRate(customer.Plan, customer.CommissionRateOverride)
	if !known {
		logger.Warn("Unknown commission plan, resolving to 0%",
			"customer_id", customer.ID, "plan", customer.Plan)
	}
	return rate
}
