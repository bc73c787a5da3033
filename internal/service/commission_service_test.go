package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"fleetpay-backend/internal/domain"
)

func TestCommissionService_ResolveRate(t *testing.T) {
	ctx := context.Background()

	t.Run("PlanRate", func(t *testing.T) {
		customerRepo := new(MockCustomerRepo)
		svc := NewCommissionService(customerRepo)
		customerRepo.On("GetByID", ctx, "cust-1").Return(&domain.FleetCustomer{
			ID: "cust-1", Plan: domain.CommissionPlanPremium,
		}, nil)

		rate, err := svc.ResolveRate(ctx, "cust-1")
		assert.NoError(t, err)
		assert.True(t, rate.Equal(decimal.NewFromFloat(0.35)))
	})

	t.Run("OverrideWins", func(t *testing.T) {
		customerRepo := new(MockCustomerRepo)
		svc := NewCommissionService(customerRepo)
		override := decimal.NewFromFloat(0.12)
		customerRepo.On("GetByID", ctx, "cust-1").Return(&domain.FleetCustomer{
			ID: "cust-1", Plan: domain.CommissionPlanPremium, CommissionRateOverride: &override,
		}, nil)

		rate, err := svc.ResolveRate(ctx, "cust-1")
		assert.NoError(t, err)
		assert.True(t, rate.Equal(override))
	})

	t.Run("UnknownPlanIsZero", func(t *testing.T) {
		customerRepo := new(MockCustomerRepo)
		svc := NewCommissionService(customerRepo)
		customerRepo.On("GetByID", ctx, "cust-1").Return(&domain.FleetCustomer{
			ID: "cust-1", Plan: domain.CommissionPlan("platinum"),
		}, nil)

		rate, err := svc.ResolveRate(ctx, "cust-1")
		assert.NoError(t, err)
		assert.True(t, rate.IsZero())
	})

	t.Run("CustomerNotFound", func(t *testing.T) {
		customerRepo := new(MockCustomerRepo)
		svc := NewCommissionService(customerRepo)
		customerRepo.On("GetByID", ctx, "ghost").
			Return(nil, &domain.NotFoundError{Resource: "customer", ID: "ghost"})

		_, err := svc.ResolveRate(ctx, "ghost")
		assert.True(t, domain.IsNotFound(err))
	})
}
