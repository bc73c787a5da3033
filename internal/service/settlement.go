package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fleetpay-backend/internal/domain"
	"fleetpay-backend/internal/logger"
	"fleetpay-backend/internal/pricing"
	"fleetpay-backend/internal/repository"
)

// SettlementParams are the configured inputs of the monthly calculator.
type SettlementParams struct {
	GuaranteeTargetDays int
}

type settlementService struct {
	settlementRepo   repository.SettlementRepository
	customerRepo     repository.CustomerRepository
	vehicleRepo      repository.VehicleRepository
	bookingRepo      repository.BookingRepository
	loanRepo         repository.LoanRepository
	notificationRepo repository.NotificationRepository
	emailSvc         EmailService
	params           SettlementParams
}

func NewSettlementService(
	settlementRepo repository.SettlementRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
	bookingRepo repository.BookingRepository,
	loanRepo repository.LoanRepository,
	notificationRepo repository.NotificationRepository,
	emailSvc EmailService,
	params SettlementParams,
) SettlementService {
	return &settlementService{
		settlementRepo:   settlementRepo,
		customerRepo:     customerRepo,
		vehicleRepo:      vehicleRepo,
		bookingRepo:      bookingRepo,
		loanRepo:         loanRepo,
		notificationRepo: notificationRepo,
		emailSvc:         emailSvc,
		params:           params,
	}
}

// monthStart normalizes an arbitrary timestamp to the first day of its month
// in UTC, the canonical settlement period key.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (s *settlementService) ComputeMonthly(ctx context.Context, customerID string, period time.Time) (*domain.MonthlySettlement, error) {
	logger.EnterMethod("settlementService.ComputeMonthly", "customerID", customerID, "period", period)

	periodStart := monthStart(period)
	periodEnd := periodStart.AddDate(0, 1, 0)

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		logger.ExitMethodWithError("settlementService.ComputeMonthly", err, "customerID", customerID)
		return nil, err
	}

	bookings, err := s.bookingRepo.ListRevenueForPeriod(ctx, customerID, periodStart, periodEnd)
	if err != nil {
		logger.ExitMethodWithError("settlementService.ComputeMonthly", err, "customerID", customerID)
		return nil, err
	}

	totalRevenue := decimal.Zero
	for _, b := range bookings {
		totalRevenue = totalRevenue.Add(b.TotalPrice)
	}

	rate := resolveBillingRate(customer)
	commission := pricing.CommissionAmount(totalRevenue, rate)

	installmentTotal, err := s.loanRepo.ActiveInstallmentTotal(ctx, customerID)
	if err != nil {
		logger.ExitMethodWithError("settlementService.ComputeMonthly", err, "customerID", customerID)
		return nil, err
	}

	settlement := &domain.MonthlySettlement{
		CustomerID:       customerID,
		Period:           periodStart,
		TotalRevenue:     totalRevenue,
		CommissionRate:   rate,
		CommissionAmount: commission,
		InstallmentTotal: installmentTotal,
		NetPayout:        pricing.NetPayout(totalRevenue, commission, installmentTotal),
		BookingsCount:    len(bookings),
		Status:           domain.SettlementStatusPending,
	}
	if err := s.settlementRepo.Create(ctx, settlement); err != nil {
		logger.ExitMethodWithError("settlementService.ComputeMonthly", err, "customerID", customerID, "period", periodStart)
		return nil, err
	}

	s.notifySettlement(ctx, customer, settlement)

	logger.ExitMethod("settlementService.ComputeMonthly", "settlementID", settlement.ID,
		"netPayout", settlement.NetPayout, "bookings", settlement.BookingsCount)
	return settlement, nil
}

func (s *settlementService) MarkPaid(ctx context.Context, settlementID int64) (*domain.MonthlySettlement, error) {
	logger.EnterMethod("settlementService.MarkPaid", "settlementID", settlementID)

	settlement, err := s.settlementRepo.MarkPaid(ctx, settlementID, time.Now().UTC())
	if err != nil {
		logger.ExitMethodWithError("settlementService.MarkPaid", err, "settlementID", settlementID)
		return nil, err
	}

	logger.ExitMethod("settlementService.MarkPaid", "settlementID", settlementID)
	return settlement, nil
}

func (s *settlementService) List(ctx context.Context, customerID string) ([]domain.MonthlySettlement, error) {
	return s.settlementRepo.ListByCustomer(ctx, customerID)
}

func (s *settlementService) VehicleEconomy(ctx context.Context, customerID string, period time.Time) ([]domain.VehicleEconomy, error) {
	logger.EnterMethod("settlementService.VehicleEconomy", "customerID", customerID, "period", period)

	periodStart := monthStart(period)
	periodEnd := periodStart.AddDate(0, 1, 0)

	vehicles, err := s.vehicleRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		logger.ExitMethodWithError("settlementService.VehicleEconomy", err, "customerID", customerID)
		return nil, err
	}

	fleetSize, err := s.vehicleRepo.CountByCustomer(ctx, customerID)
	if err != nil {
		logger.ExitMethodWithError("settlementService.VehicleEconomy", err, "customerID", customerID)
		return nil, err
	}
	// The export uses the size-tiered scale; live billing never does.
	tierRate := pricing.TieredCommissionRate(fleetSize)

	rows := make([]domain.VehicleEconomy, 0, len(vehicles))
	for _, v := range vehicles {
		bookings, err := s.bookingRepo.ListRevenueForVehiclePeriod(ctx, v.ID, periodStart, periodEnd)
		if err != nil {
			logger.ExitMethodWithError("settlementService.VehicleEconomy", err, "vehicleID", v.ID)
			return nil, err
		}

		gross := decimal.Zero
		for _, b := range bookings {
			gross = gross.Add(b.TotalPrice)
		}
		commission := pricing.CommissionAmount(gross, tierRate)

		installment, err := s.loanRepo.ActiveInstallmentTotalForVehicle(ctx, v.ID)
		if err != nil {
			logger.ExitMethodWithError("settlementService.VehicleEconomy", err, "vehicleID", v.ID)
			return nil, err
		}

		yearBookings, err := s.bookingRepo.ListRevenueForVehicleYear(ctx, v.ID, periodStart.Year())
		if err != nil {
			logger.ExitMethodWithError("settlementService.VehicleEconomy", err, "vehicleID", v.ID)
			return nil, err
		}

		rows = append(rows, domain.VehicleEconomy{
			VehicleID:          v.ID,
			Registration:       v.Registration,
			Period:             periodStart,
			GrossRevenue:       gross,
			CommissionRate:     tierRate,
			CommissionAmount:   commission,
			MonthlyInstallment: installment,
			NetPayout:          pricing.NetPayout(gross, commission, installment),
			BookingsCount:      len(bookings),
			Guarantee:          pricing.GuaranteeStatus(v.ID, periodStart.Year(), yearBookings, s.params.GuaranteeTargetDays),
		})
	}

	logger.ExitMethod("settlementService.VehicleEconomy", "customerID", customerID, "vehicles", len(rows))
	return rows, nil
}

// notifySettlement records the in-app notification and sends the statement
// email best-effort; dispatch failures never roll the settlement back.
func (s *settlementService) notifySettlement(ctx context.Context, customer *domain.FleetCustomer, settlement *domain.MonthlySettlement) {
	note := &domain.Notification{
		CustomerID: customer.ID,
		Title:      "Monthly settlement ready",
		Message: fmt.Sprintf("Your settlement for %s is ready: net payout %s from %d bookings.",
			settlement.Period.Format("January 2006"), settlement.NetPayout, settlement.BookingsCount),
		Attributes: map[string]string{
			"topic":         "monthly_settlement",
			"settlement_id": fmt.Sprintf("%d", settlement.ID),
			"period":        settlement.Period.Format("2006-01"),
		},
	}
	if err := s.notificationRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to create settlement notification", "settlement_id", settlement.ID, "error", err)
	}
	if err := s.emailSvc.SendSettlementStatement(ctx, customer.Email, customer.Name, settlement); err != nil {
		logger.Error("Failed to send settlement statement", "settlement_id", settlement.ID, "error", err)
	}
}
