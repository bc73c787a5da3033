package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fleetpay-backend/internal/domain"
	"fleetpay-backend/internal/logger"
	"fleetpay-backend/internal/pricing"
	"fleetpay-backend/internal/repository"
)

// CheckoutParams are the configured defaults for the return calculator.
// Vehicle and booking attributes take precedence where present.
type CheckoutParams struct {
	FuelTolerancePct   decimal.Decimal
	FuelTankLiters     decimal.Decimal
	FuelPricePerLiter  decimal.Decimal
	FuelShortfallFee   decimal.Decimal
	DefaultExtraKmRate decimal.Decimal
}

type checkoutService struct {
	checkoutRepo repository.CheckoutRepository
	bookingRepo  repository.BookingRepository
	vehicleRepo  repository.VehicleRepository
	fineRepo     repository.FineRepository
	emailSvc     EmailService
	params       CheckoutParams
}

func NewCheckoutService(
	checkoutRepo repository.CheckoutRepository,
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	fineRepo repository.FineRepository,
	emailSvc EmailService,
	params CheckoutParams,
) CheckoutService {
	return &checkoutService{
		checkoutRepo: checkoutRepo,
		bookingRepo:  bookingRepo,
		vehicleRepo:  vehicleRepo,
		fineRepo:     fineRepo,
		emailSvc:     emailSvc,
		params:       params,
	}
}

func (s *checkoutService) Compute(ctx context.Context, in CheckoutInput) (*domain.CheckoutRecord, error) {
	logger.EnterMethod("checkoutService.Compute", "bookingID", in.BookingID)

	booking, err := s.bookingRepo.GetByID(ctx, in.BookingID)
	if err != nil {
		logger.ExitMethodWithError("checkoutService.Compute", err, "bookingID", in.BookingID)
		return nil, err
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, booking.VehicleID)
	if err != nil {
		logger.ExitMethodWithError("checkoutService.Compute", err, "bookingID", in.BookingID)
		return nil, err
	}

	overageRate := booking.ExtraKmPrice
	if overageRate.IsZero() {
		overageRate = s.params.DefaultExtraKmRate
	}
	tankLiters := vehicle.FuelTankLiters
	if tankLiters.IsZero() {
		tankLiters = s.params.FuelTankLiters
	}

	breakdown, err := pricing.ComputeCheckout(pricing.CheckoutInput{
		CheckinOdometer:     in.CheckinOdometer,
		CheckoutOdometer:    in.CheckoutOdometer,
		IncludedKm:          booking.IncludedKm,
		OverageRate:         overageRate,
		FuelStartPercent:    in.FuelStartPercent,
		FuelEndPercent:      in.FuelEndPercent,
		FuelTolerance:       s.params.FuelTolerancePct,
		TankLiters:          tankLiters,
		PricePerLiter:       s.params.FuelPricePerLiter,
		FuelShortfallFee:    s.params.FuelShortfallFee,
		ExteriorClean:       in.ExteriorClean,
		InteriorClean:       in.InteriorClean,
		ExteriorCleaningFee: vehicle.ExteriorCleaningFee,
		InteriorCleaningFee: vehicle.InteriorCleaningFee,
	})
	if err != nil {
		logger.ExitMethodWithError("checkoutService.Compute", err, "bookingID", in.BookingID)
		return nil, err
	}

	rec := &domain.CheckoutRecord{
		BookingID:           booking.ID,
		VehicleID:           vehicle.ID,
		KmDriven:            breakdown.KmDriven,
		KmIncluded:          booking.IncludedKm,
		KmOverage:           breakdown.KmOverage,
		KmOverageFee:        breakdown.KmOverageFee,
		FuelStartPercent:    in.FuelStartPercent,
		FuelEndPercent:      in.FuelEndPercent,
		FuelMissingLiters:   breakdown.FuelMissingLiters,
		FuelFee:             breakdown.FuelFee,
		ExteriorClean:       in.ExteriorClean,
		InteriorClean:       in.InteriorClean,
		ExteriorCleaningFee: breakdown.ExteriorCleaningFee,
		InteriorCleaningFee: breakdown.InteriorCleaningFee,
		TotalExtraCharges:   breakdown.TotalExtraCharges,
		SettlementStatus:    domain.CheckoutStatusCalculated,
	}
	// Nothing to review when the return is clean.
	if breakdown.TotalExtraCharges.IsZero() {
		rec.SettlementStatus = domain.CheckoutStatusApproved
	}

	if err := s.checkoutRepo.Create(ctx, rec); err != nil {
		if domain.IsConflict(err) {
			// The booking was already checked out; replaying the event
			// returns the stored record instead of a second one.
			existing, getErr := s.checkoutRepo.GetByBooking(ctx, in.BookingID)
			if getErr != nil {
				logger.ExitMethodWithError("checkoutService.Compute", getErr, "bookingID", in.BookingID)
				return nil, getErr
			}
			if existing == nil {
				logger.ExitMethodWithError("checkoutService.Compute", err, "bookingID", in.BookingID)
				return nil, err
			}
			logger.ExitMethod("checkoutService.Compute", "checkoutID", existing.ID, "replayed", true)
			return existing, nil
		}
		logger.ExitMethodWithError("checkoutService.Compute", err, "bookingID", in.BookingID)
		return nil, err
	}

	logger.ExitMethod("checkoutService.Compute", "checkoutID", rec.ID,
		"totalExtraCharges", rec.TotalExtraCharges, "status", rec.SettlementStatus)
	return rec, nil
}

func (s *checkoutService) Approve(ctx context.Context, id int64) (*domain.CheckoutRecord, error) {
	logger.EnterMethod("checkoutService.Approve", "checkoutID", id)

	rec, err := s.checkoutRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("checkoutService.Approve", err, "checkoutID", id)
		return nil, err
	}
	if rec.SettlementStatus != domain.CheckoutStatusCalculated {
		// Replaying approve on an approved or settled record is a no-op.
		logger.ExitMethod("checkoutService.Approve", "checkoutID", id, "status", rec.SettlementStatus, "replayed", true)
		return rec, nil
	}

	changed, err := s.checkoutRepo.Approve(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("checkoutService.Approve", err, "checkoutID", id)
		return nil, err
	}
	if changed {
		rec.SettlementStatus = domain.CheckoutStatusApproved
	} else {
		// Lost a race with another approver; the stored state wins.
		rec, err = s.checkoutRepo.GetByID(ctx, id)
		if err != nil {
			logger.ExitMethodWithError("checkoutService.Approve", err, "checkoutID", id)
			return nil, err
		}
	}

	logger.ExitMethod("checkoutService.Approve", "checkoutID", id, "status", rec.SettlementStatus)
	return rec, nil
}

func (s *checkoutService) Settle(ctx context.Context, id int64) (*domain.CheckoutRecord, error) {
	logger.EnterMethod("checkoutService.Settle", "checkoutID", id)

	rec, err := s.checkoutRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("checkoutService.Settle", err, "checkoutID", id)
		return nil, err
	}
	if rec.SettlementStatus == domain.CheckoutStatusSettled {
		logger.ExitMethod("checkoutService.Settle", "checkoutID", id, "replayed", true)
		return rec, nil
	}
	if rec.SettlementStatus != domain.CheckoutStatusApproved {
		err := domain.Conflictf("checkout", "record %d must be approved before settlement", id)
		logger.ExitMethodWithError("checkoutService.Settle", err, "checkoutID", id)
		return nil, err
	}

	fines, err := s.fineRepo.ListUnpaidByBooking(ctx, rec.BookingID)
	if err != nil {
		logger.ExitMethodWithError("checkoutService.Settle", err, "checkoutID", id)
		return nil, err
	}
	finesTotal := decimal.Zero
	for _, f := range fines {
		finesTotal = finesTotal.Add(f.Amount)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, rec.VehicleID)
	if err != nil {
		logger.ExitMethodWithError("checkoutService.Settle", err, "checkoutID", id)
		return nil, err
	}

	now := time.Now().UTC()
	rec.FinesTotal = finesTotal
	rec.TotalExtraCharges = rec.TotalExtraCharges.Add(finesTotal)
	rec.DepositRefund, rec.AmountDueFromRenter = pricing.DepositSplit(vehicle.DepositAmount, rec.TotalExtraCharges)
	rec.SettledAt = &now

	settled, err := s.checkoutRepo.Settle(ctx, rec)
	if err != nil {
		logger.ExitMethodWithError("checkoutService.Settle", err, "checkoutID", id)
		return nil, err
	}
	if !settled {
		// A concurrent settle won; return its totals rather than ours.
		rec, err = s.checkoutRepo.GetByID(ctx, id)
		if err != nil {
			logger.ExitMethodWithError("checkoutService.Settle", err, "checkoutID", id)
			return nil, err
		}
		logger.ExitMethod("checkoutService.Settle", "checkoutID", id, "replayed", true)
		return rec, nil
	}
	rec.SettlementStatus = domain.CheckoutStatusSettled

	if len(fines) > 0 {
		if _, err := s.fineRepo.MarkPaidByBooking(ctx, rec.BookingID, now); err != nil {
			logger.Error("Failed to mark booking fines paid", "booking_id", rec.BookingID, "error", err)
		}
	}

	if booking, err := s.bookingRepo.GetByID(ctx, rec.BookingID); err != nil {
		logger.Error("Failed to load booking for checkout statement", "booking_id", rec.BookingID, "error", err)
	} else if err := s.emailSvc.SendCheckoutStatement(ctx, booking.RenterEmail, rec); err != nil {
		logger.Error("Failed to send checkout statement", "checkout_id", rec.ID, "error", err)
	}

	logger.ExitMethod("checkoutService.Settle", "checkoutID", id,
		"totalExtraCharges", rec.TotalExtraCharges, "depositRefund", rec.DepositRefund)
	return rec, nil
}
