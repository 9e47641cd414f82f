package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
)

// OccupancyRate computes booked nights over available nights as a percent
// in [0, 100]. Pass an empty month for a full-year rate. Available nights
// are daysInPeriod × distinct apartments observed in the restricted set
// (floored at 1 so an empty set divides cleanly). The result is capped at
// 100 so duplicate or overlapping records cannot push it higher.
//
// An unknown month name yields 0: it is treated as an invalid query, not
// an error.
func OccupancyRate(bookings []*domain.Booking, year int, month string) float64 {
	scoped := make([]*domain.Booking, 0, len(bookings))
	for _, b := range ActiveBookings(bookings) {
		if b.Year != year {
			continue
		}
		if month != "" && b.MonthName() != month {
			continue
		}
		scoped = append(scoped, b)
	}

	daysInPeriod := domain.DaysInYear(year)
	if month != "" {
		idx, ok := domain.MonthIndex(month)
		if !ok {
			return 0
		}
		daysInPeriod = domain.DaysInMonth(year, idx)
	}

	totalNights := 0
	apartments := make(map[string]struct{})
	for _, b := range scoped {
		totalNights += b.Nights
		apartments[b.Apartment] = struct{}{}
	}

	numApartments := len(apartments)
	if numApartments < 1 {
		numApartments = 1
	}

	rate := float64(totalNights) / float64(daysInPeriod*numApartments) * 100
	if rate > 100 {
		return 100
	}
	return rate
}

// ADR returns the average daily rate: revenue divided by booked nights,
// zero when no nights were booked.
func ADR(bookings []*domain.Booking) decimal.Decimal {
	nights := TotalNights(bookings)
	if nights == 0 {
		return decimal.Zero
	}
	return TotalRevenue(bookings).Div(decimal.NewFromInt(int64(nights)))
}

// RevPAR returns revenue per available room-night: revenue divided by
// distinct apartments × days in the year. Unlike ADR this uses an
// availability-based denominator; the two formulas are deliberately kept
// separate.
func RevPAR(bookings []*domain.Booking, year int) decimal.Decimal {
	apartments := make(map[string]struct{})
	for _, b := range ActiveBookings(bookings) {
		apartments[b.Apartment] = struct{}{}
	}
	numApartments := len(apartments)
	if numApartments < 1 {
		numApartments = 1
	}

	available := int64(numApartments * domain.DaysInYear(year))
	return TotalRevenue(bookings).Div(decimal.NewFromInt(available))
}
