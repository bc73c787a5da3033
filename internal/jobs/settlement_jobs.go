package jobs

import (
	"context"
	"time"

	"fleetpay-backend/internal/domain"
	"fleetpay-backend/internal/logger"
)

// RunMonthlySettlements computes the previous month's settlement for every
// fleet customer. A customer that already has a row for the period is skipped;
// one failing customer never aborts the batch.
func (jr *JobRunner) RunMonthlySettlements() {
	jr.runWithRecovery("RunMonthlySettlements", func() {
		ctx := context.Background()

		now := time.Now().UTC()
		period := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)

		settled, skipped, failed := jr.settleFleetForPeriod(ctx, period)

		logger.Info("Monthly settlement batch finished",
			"period", period.Format("2006-01"),
			"settled", settled,
			"skipped", skipped,
			"failed", failed)
	})
}

func (jr *JobRunner) settleFleetForPeriod(ctx context.Context, period time.Time) (settled, skipped, failed int) {
	customers, err := jr.store.CustomerRepository.ListFleetCustomers(ctx)
	if err != nil {
		logger.Error("Failed to list fleet customers", "error", err)
		return
	}

	for _, c := range customers {
		existing, err := jr.store.SettlementRepository.GetByCustomerPeriod(ctx, c.ID, period)
		if err != nil {
			failed++
			logger.Error("Failed to check for existing settlement",
				"customer_id", c.ID,
				"period", period.Format("2006-01"),
				"error", err)
			continue
		}
		if existing != nil {
			// Already settled, usually by a manual run or a previous attempt.
			skipped++
			continue
		}

		s, err := jr.services.Settlement.ComputeMonthly(ctx, c.ID, period)
		if err != nil {
			if domain.IsConflict(err) {
				// A concurrent run won the insert between the check and the
				// compute; same outcome as an existing row.
				skipped++
				continue
			}
			failed++
			logger.Error("Failed to compute monthly settlement",
				"customer_id", c.ID,
				"period", period.Format("2006-01"),
				"error", err)
			continue
		}
		settled++
		logger.Info("Monthly settlement created",
			"customer_id", c.ID,
			"settlement_id", s.ID,
			"net_payout", s.NetPayout)
	}
	return settled, skipped, failed
}
