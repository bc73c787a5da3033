package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"fleetpay-backend/internal/domain"
)

// RentedDaysInYear sums the day spans of revenue-counting bookings clipped to
// the year boundary. Both endpoints are inclusive; bookings entirely outside
// the year contribute zero.
func RentedDaysInYear(bookings []domain.Booking, year int) int {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	total := 0
	for _, b := range bookings {
		if !revenueCounting(b.Status) {
			continue
		}
		// Timestamps count by calendar date, so drop the time-of-day before
		// differencing; otherwise a partial final day would be lost.
		start := dateOnly(b.StartDate)
		if start.Before(yearStart) {
			start = yearStart
		}
		end := dateOnly(b.EndDate)
		if end.After(yearEnd) {
			end = yearEnd
		}
		days := int(end.Sub(start).Hours()/24) + 1
		if days > 0 {
			total += days
		}
	}
	return total
}

// GuaranteeStatus derives a vehicle's rental-day guarantee standing for one
// year against the fixed target.
func GuaranteeStatus(vehicleID string, year int, bookings []domain.Booking, targetDays int) domain.GuaranteeStatus {
	days := RentedDaysInYear(bookings, year)

	pct := decimal.NewFromInt(int64(days)).
		Div(decimal.NewFromInt(int64(targetDays))).
		Mul(decimal.NewFromInt(100)).Round(2)
	hundred := decimal.NewFromInt(100)
	if pct.GreaterThan(hundred) {
		pct = hundred
	}

	return domain.GuaranteeStatus{
		VehicleID:  vehicleID,
		Year:       year,
		DaysRented: days,
		TargetDays: targetDays,
		Percentage: pct,
		Met:        days >= targetDays,
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func revenueCounting(s domain.BookingStatus) bool {
	for _, rs := range domain.RevenueStatuses {
		if s == rs {
			return true
		}
	}
	return false
}
