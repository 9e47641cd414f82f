package analytics

import (
	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
)

// MonthlyData buckets a year's active bookings into twelve month records
// in calendar order. Months without bookings still appear with all-zero
// metrics: consumers align chart series by position, so the result always
// has exactly twelve entries.
func MonthlyData(bookings []*domain.Booking, year int) []domain.MonthlyMetrics {
	months := make([]domain.MonthlyMetrics, len(domain.MonthNames))
	for i, name := range domain.MonthNames {
		months[i] = domain.MonthlyMetrics{
			Name:  domain.MonthShort(name),
			Month: name,
		}
	}

	active := ActiveBookings(bookings)
	for _, b := range active {
		if b.Year != year {
			continue
		}
		idx, ok := domain.MonthIndex(b.MonthName())
		if !ok {
			continue
		}
		m := &months[idx]
		m.Revenue = m.Revenue.Add(b.Price)
		m.Profit = m.Profit.Add(b.Profit)
		m.Commissions = m.Commissions.Add(b.Commission)
		m.CleaningFees = m.CleaningFees.Add(b.CleaningFee)
		m.Bookings++
		m.Nights += b.Nights
	}

	for i := range months {
		m := &months[i]
		m.Occupancy = OccupancyRate(active, year, m.Month)
		m.Profitability = ratioPercent(m.Profit, m.Revenue)
	}

	return months
}
