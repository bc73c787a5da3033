package service

import (
	"context"

	"fleetpay-backend/internal/domain"
	"fleetpay-backend/internal/logger"
	"fleetpay-backend/internal/pricing"
	"fleetpay-backend/internal/repository"
)

type guaranteeService struct {
	vehicleRepo repository.VehicleRepository
	bookingRepo repository.BookingRepository
	targetDays  int
}

func NewGuaranteeService(vehicleRepo repository.VehicleRepository, bookingRepo repository.BookingRepository, targetDays int) GuaranteeService {
	return &guaranteeService{
		vehicleRepo: vehicleRepo,
		bookingRepo: bookingRepo,
		targetDays:  targetDays,
	}
}

func (s *guaranteeService) Status(ctx context.Context, vehicleID string, year int) (*domain.GuaranteeStatus, error) {
	logger.EnterMethod("guaranteeService.Status", "vehicleID", vehicleID, "year", year)

	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		logger.ExitMethodWithError("guaranteeService.Status", err, "vehicleID", vehicleID)
		return nil, err
	}

	bookings, err := s.bookingRepo.ListRevenueForVehicleYear(ctx, vehicleID, year)
	if err != nil {
		logger.ExitMethodWithError("guaranteeService.Status", err, "vehicleID", vehicleID)
		return nil, err
	}

	status := pricing.GuaranteeStatus(vehicleID, year, bookings, s.targetDays)
	logger.ExitMethod("guaranteeService.Status", "vehicleID", vehicleID,
		"daysRented", status.DaysRented, "met", status.Met)
	return &status, nil
}
