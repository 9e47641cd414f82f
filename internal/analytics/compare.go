package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
)

// PercentChange returns the percent change from previous to current with
// the zero-previous guard: 100 when something appeared from nothing, 0
// when both are zero. Never NaN or ±Inf.
func PercentChange(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.GreaterThan(decimal.Zero) {
			return 100
		}
		return 0
	}
	change, _ := current.Sub(previous).Div(previous).Float64()
	return change * 100
}

// PercentChangeFloat is PercentChange for float64 metrics such as rates.
func PercentChangeFloat(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// PercentChangeInt is PercentChange for counters.
func PercentChangeInt(current, previous int) float64 {
	return PercentChangeFloat(float64(current), float64(previous))
}

// YearMetrics computes the full-year figures for one year: every booking
// of that year regardless of the dashboard's month or apartment filter,
// since comparisons always operate on complete yearly sets.
func YearMetrics(bookings []*domain.Booking, year int) domain.YearMetrics {
	yearBookings := make([]*domain.Booking, 0, len(bookings))
	for _, b := range ActiveBookings(bookings) {
		if b.Year == year {
			yearBookings = append(yearBookings, b)
		}
	}

	return domain.YearMetrics{
		Year:          year,
		Revenue:       TotalRevenue(yearBookings),
		Profit:        TotalProfit(yearBookings),
		OccupancyRate: OccupancyRate(yearBookings, year, ""),
		ADR:           ADR(yearBookings),
		RevPAR:        RevPAR(yearBookings, year),
		Bookings:      len(yearBookings),
		Nights:        TotalNights(yearBookings),
		HasData:       len(yearBookings) > 0,
		MonthlyData:   MonthlyData(yearBookings, year),
	}
}

// CompareYears runs the yearly metrics for the primary year and each
// comparison year independently and derives percent deltas plus the
// month-by-month pairing. A comparison year without bookings is returned
// as an explicit zeroed entry with HasData false; numbers are never
// fabricated for missing years.
func CompareYears(bookings []*domain.Booking, primaryYear int, comparisonYears []int) domain.YearComparison {
	current := YearMetrics(bookings, primaryYear)

	result := domain.YearComparison{
		CurrentYear: current,
		Comparisons: make([]domain.YearComparisonEntry, 0, len(comparisonYears)),
	}

	for _, year := range comparisonYears {
		previous := YearMetrics(bookings, year)

		entry := domain.YearComparisonEntry{
			YearMetrics: previous,
			Changes: domain.MetricChanges{
				Revenue:       PercentChange(current.Revenue, previous.Revenue),
				Profit:        PercentChange(current.Profit, previous.Profit),
				OccupancyRate: PercentChangeFloat(current.OccupancyRate, previous.OccupancyRate),
				ADR:           PercentChange(current.ADR, previous.ADR),
				RevPAR:        PercentChange(current.RevPAR, previous.RevPAR),
				Bookings:      PercentChangeInt(current.Bookings, previous.Bookings),
				Nights:        PercentChangeInt(current.Nights, previous.Nights),
			},
			Monthly: monthlyComparison(current.MonthlyData, previous.MonthlyData),
		}
		result.Comparisons = append(result.Comparisons, entry)
	}

	return result
}

// monthlyComparison pairs the twelve months of two years by calendar
// position for side-by-side charting. Both inputs always hold twelve
// records, one per month, in calendar order.
func monthlyComparison(current, previous []domain.MonthlyMetrics) []domain.MonthComparison {
	pairs := make([]domain.MonthComparison, 0, len(current))
	for i := range current {
		cur := current[i]
		var prev domain.MonthlyMetrics
		if i < len(previous) {
			prev = previous[i]
		}
		pairs = append(pairs, domain.MonthComparison{
			Month:    cur.Month,
			Current:  cur,
			Previous: prev,
			Changes: domain.MonthChanges{
				Revenue:   PercentChange(cur.Revenue, prev.Revenue),
				Profit:    PercentChange(cur.Profit, prev.Profit),
				Occupancy: PercentChangeFloat(cur.Occupancy, prev.Occupancy),
				Bookings:  PercentChangeInt(cur.Bookings, prev.Bookings),
				Nights:    PercentChangeInt(cur.Nights, prev.Nights),
			},
		})
	}
	return pairs
}

// Summary computes the headline metrics for an already-filtered booking
// set scoped to a year (and optionally a month).
func Summary(bookings []*domain.Booking, year int, month string) domain.MetricsSummary {
	active := ActiveBookings(bookings)
	return domain.MetricsSummary{
		Revenue:            TotalRevenue(active),
		Profit:             TotalProfit(active),
		Commissions:        TotalCommissions(active),
		CleaningFees:       TotalCleaningFees(active),
		AverageNightlyRate: AverageNightlyRate(active),
		ADR:                ADR(active),
		RevPAR:             RevPAR(active, year),
		Occupancy:          OccupancyRate(active, year, month),
		Profitability:      Profitability(active),
		Bookings:           len(active),
		Nights:             TotalNights(active),
	}
}
