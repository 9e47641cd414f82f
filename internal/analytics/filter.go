// Package analytics implements the booking metrics computation and
// filtering engine: pure, synchronous transformations from raw booking
// records to the aggregates the dashboard renders. Nothing in this package
// performs I/O or mutates its inputs.
package analytics

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
)

// ActiveBookings returns the bookings that are not cancellations.
// Excluding cancellations is the single most important business rule in
// the engine: a cancelled booking must never contribute to any financial
// or occupancy total.
func ActiveBookings(bookings []*domain.Booking) []*domain.Booking {
	active := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || b.IsCancelled() {
			continue
		}
		active = append(active, b)
	}
	return active
}

// FilterBookings returns the bookings matching every active dimension of
// the filter. A nil filter returns the input unfiltered; this mirrors the
// lenient boundary policy of favoring availability over strictness when
// the call shape is malformed.
func FilterBookings(bookings []*domain.Booking, filter *domain.BookingFilter) []*domain.Booking {
	if filter == nil {
		log.Warn().Msg("filterBookings called without a filter, returning input unfiltered")
		return bookings
	}

	filtered := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b == nil {
			log.Warn().Msg("skipping nil booking record")
			continue
		}
		if Matches(b, filter) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// Matches evaluates a single booking against a normalized filter. All
// dimensions are independent conjunctions, so evaluation order never
// changes the result.
func Matches(b *domain.Booking, f *domain.BookingFilter) bool {
	if len(f.Apartments) > 0 && !containsString(f.Apartments, b.Apartment) {
		return false
	}

	if f.Channel != "" && b.Channel != f.Channel {
		return false
	}

	if f.Month != "" && b.MonthName() != f.Month {
		return false
	}

	if b.Year != 0 && !f.YearAdmitted(b.Year) {
		return false
	}

	if f.Paid != nil && b.Paid != *f.Paid {
		return false
	}

	return overlapsRange(b, f.DateRange)
}

// overlapsRange checks whether the stay [checkIn, checkOut) overlaps the
// inclusive filter window. A bound that cannot be applied (missing booking
// dates) is skipped rather than treated as a rejection: bad data must not
// silently exclude a booking.
func overlapsRange(b *domain.Booking, r domain.DateRange) bool {
	if r.From == nil && r.To == nil {
		return true
	}
	if b.CheckIn.IsZero() || b.CheckOut.IsZero() {
		log.Debug().Str("booking_id", b.ID).Msg("booking without stay dates, skipping date range filter")
		return true
	}

	if r.From != nil && b.CheckOut.Before(*r.From) {
		return false // stay ends before the window opens
	}
	if r.To != nil && b.CheckIn.After(*r.To) {
		return false // stay starts after the window closes
	}
	return true
}

// AvailableYears returns the sorted distinct years observed in the bookings.
func AvailableYears(bookings []*domain.Booking) []int {
	seen := make(map[int]struct{})
	for _, b := range bookings {
		if b != nil && b.Year != 0 {
			seen[b.Year] = struct{}{}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// AvailableMonths returns the distinct canonical month names observed for
// a year, in calendar order.
func AvailableMonths(bookings []*domain.Booking, year int) []string {
	seen := make(map[string]struct{})
	for _, b := range bookings {
		if b == nil || b.Year != year {
			continue
		}
		if name := b.MonthName(); name != "" {
			seen[name] = struct{}{}
		}
	}
	months := make([]string, 0, len(seen))
	for _, name := range domain.MonthNames {
		if _, ok := seen[name]; ok {
			months = append(months, name)
		}
	}
	return months
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
