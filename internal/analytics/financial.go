package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
)

// TotalRevenue sums gross revenue over active bookings.
func TotalRevenue(bookings []*domain.Booking) decimal.Decimal {
	total := decimal.Zero
	for _, b := range ActiveBookings(bookings) {
		total = total.Add(b.Price)
	}
	return total
}

// TotalProfit sums profit over active bookings.
func TotalProfit(bookings []*domain.Booking) decimal.Decimal {
	total := decimal.Zero
	for _, b := range ActiveBookings(bookings) {
		total = total.Add(b.Profit)
	}
	return total
}

// TotalCommissions sums channel commissions over active bookings.
func TotalCommissions(bookings []*domain.Booking) decimal.Decimal {
	total := decimal.Zero
	for _, b := range ActiveBookings(bookings) {
		total = total.Add(b.Commission)
	}
	return total
}

// TotalCleaningFees sums cleaning fees over active bookings.
func TotalCleaningFees(bookings []*domain.Booking) decimal.Decimal {
	total := decimal.Zero
	for _, b := range ActiveBookings(bookings) {
		total = total.Add(b.CleaningFee)
	}
	return total
}

// TotalNights sums the stored nights over active bookings. Aggregation
// trusts the stored nights column, never a recomputation from dates.
func TotalNights(bookings []*domain.Booking) int {
	total := 0
	for _, b := range ActiveBookings(bookings) {
		total += b.Nights
	}
	return total
}

// AverageNightlyRate returns the nights-weighted average of the per-booking
// nightly rates, zero when no nights were booked.
func AverageNightlyRate(bookings []*domain.Booking) decimal.Decimal {
	active := ActiveBookings(bookings)

	totalNights := 0
	weighted := decimal.Zero
	for _, b := range active {
		totalNights += b.Nights
		weighted = weighted.Add(b.NightlyAverage.Mul(decimal.NewFromInt(int64(b.Nights))))
	}
	if totalNights == 0 {
		return decimal.Zero
	}
	return weighted.Div(decimal.NewFromInt(int64(totalNights)))
}

// Profitability returns profit as a percentage of revenue, zero when there
// is no revenue. The result may exceed 100 or be negative.
func Profitability(bookings []*domain.Booking) float64 {
	revenue := TotalRevenue(bookings)
	if revenue.IsZero() {
		return 0
	}
	profit := TotalProfit(bookings)
	ratio, _ := profit.Div(revenue).Float64()
	return ratio * 100
}

// ratioPercent is the shared guard for profit/revenue style percentages.
func ratioPercent(numerator, denominator decimal.Decimal) float64 {
	if denominator.IsZero() {
		return 0
	}
	ratio, _ := numerator.Div(denominator).Float64()
	return ratio * 100
}
