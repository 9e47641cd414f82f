package domain

import (
	"sort"
	"strings"
	"time"
)

// FilterAll is the sentinel meaning "no restriction" for single-value
// filter dimensions coming from the UI.
const FilterAll = "all"

// DateRange is an inclusive date window. A nil bound is open.
type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// BookingFilter describes a query over bookings. Zero values mean "no
// restriction" for every dimension except Year, which is required by most
// aggregations. Filters are normalized once at the boundary; the evaluator
// assumes a normalized filter.
type BookingFilter struct {
	Year       int       `json:"year"`
	Month      string    `json:"month,omitempty"`     // canonical name, empty = all
	Apartments []string  `json:"apartment,omitempty"` // empty = all
	Channel    string    `json:"bookingChannel,omitempty"`
	Paid       *bool     `json:"paymentStatus,omitempty"`
	DateRange  DateRange `json:"dateRange"`

	CompareMode  bool  `json:"compareMode"`
	CompareYears []int `json:"compareYears,omitempty"`
}

// Normalize canonicalizes the filter in place: "all" sentinels collapse to
// empty, apartment names are trimmed and deduplicated, comparison years are
// sorted and deduplicated with the primary year removed. Normalizing an
// already normalized filter is a no-op.
func (f *BookingFilter) Normalize() {
	if f == nil {
		return
	}

	f.Month = strings.TrimSpace(f.Month)
	if strings.EqualFold(f.Month, FilterAll) {
		f.Month = ""
	}

	f.Channel = strings.TrimSpace(f.Channel)
	if strings.EqualFold(f.Channel, FilterAll) {
		f.Channel = ""
	}

	if len(f.Apartments) > 0 {
		seen := make(map[string]struct{}, len(f.Apartments))
		apartments := f.Apartments[:0]
		for _, a := range f.Apartments {
			a = strings.TrimSpace(a)
			if a == "" {
				continue
			}
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			apartments = append(apartments, a)
		}
		f.Apartments = apartments
	}

	if len(f.CompareYears) > 0 {
		seen := make(map[int]struct{}, len(f.CompareYears))
		years := f.CompareYears[:0]
		for _, y := range f.CompareYears {
			if y == f.Year {
				continue
			}
			if _, ok := seen[y]; ok {
				continue
			}
			seen[y] = struct{}{}
			years = append(years, y)
		}
		sort.Ints(years)
		f.CompareYears = years
	}
}

// YearAdmitted reports whether a booking year passes the year dimension:
// strict equality normally, membership in {primary} ∪ comparison years when
// compare mode is active with at least one comparison year.
func (f *BookingFilter) YearAdmitted(year int) bool {
	if f.CompareMode && len(f.CompareYears) > 0 {
		if year == f.Year {
			return true
		}
		for _, y := range f.CompareYears {
			if year == y {
				return true
			}
		}
		return false
	}
	return f.Year == 0 || year == f.Year
}
