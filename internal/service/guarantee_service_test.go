package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"fleetpay-backend/internal/domain"
)

func TestGuaranteeService_Status(t *testing.T) {
	ctx := context.Background()

	t.Run("DerivesFromYearBookings", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		bookingRepo := new(MockBookingRepo)
		svc := NewGuaranteeService(vehicleRepo, bookingRepo, 300)

		vehicleRepo.On("GetByID", ctx, "v1").Return(&domain.Vehicle{ID: "v1"}, nil)
		bookingRepo.On("ListRevenueForVehicleYear", ctx, "v1", 2026).Return([]domain.Booking{
			{
				StartDate: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2026, time.June, 29, 0, 0, 0, 0, time.UTC),
				Status:    domain.BookingStatusCompleted,
			},
		}, nil)

		status, err := svc.Status(ctx, "v1", 2026)
		assert.NoError(t, err)
		assert.Equal(t, 180, status.DaysRented)
		assert.Equal(t, 300, status.TargetDays)
		assert.True(t, status.Percentage.Equal(decimal.NewFromInt(60)))
		assert.False(t, status.Met)
	})

	t.Run("UnknownVehicle", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		bookingRepo := new(MockBookingRepo)
		svc := NewGuaranteeService(vehicleRepo, bookingRepo, 300)

		vehicleRepo.On("GetByID", ctx, "ghost").
			Return(nil, &domain.NotFoundError{Resource: "vehicle", ID: "ghost"})

		_, err := svc.Status(ctx, "ghost", 2026)
		assert.True(t, domain.IsNotFound(err))
		bookingRepo.AssertNotCalled(t, "ListRevenueForVehicleYear")
	})
}
