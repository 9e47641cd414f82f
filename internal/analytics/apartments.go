package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
)

// ApartmentProfitability groups bookings by apartment and computes the
// per-apartment rollup. The apartment set comes from ALL input bookings,
// cancelled and blocked included, so an apartment with nothing but blocked
// nights still gets a row. Stats are computed from confirmed stays only;
// blocked bookings feed the blockedNights column and nothing else.
// Rows are ordered by revenue, highest first.
func ApartmentProfitability(bookings []*domain.Booking) []domain.ApartmentMetrics {
	type bucket struct {
		stays   []*domain.Booking
		blocked int
	}

	order := make([]string, 0)
	buckets := make(map[string]*bucket)
	for _, b := range bookings {
		if b == nil {
			continue
		}
		bk, ok := buckets[b.Apartment]
		if !ok {
			bk = &bucket{}
			buckets[b.Apartment] = bk
			order = append(order, b.Apartment)
		}
		switch {
		case b.IsCancelled():
			// present in the apartment set, absent from every metric
		case b.IsBlocked():
			bk.blocked += b.Nights
		default:
			bk.stays = append(bk.stays, b)
		}
	}

	rows := make([]domain.ApartmentMetrics, 0, len(order))
	for _, apartment := range order {
		bk := buckets[apartment]

		revenue := TotalRevenue(bk.stays)
		profit := TotalProfit(bk.stays)
		nights := TotalNights(bk.stays)

		row := domain.ApartmentMetrics{
			Apartment:     apartment,
			Bookings:      len(bk.stays),
			Revenue:       revenue,
			Profit:        profit,
			Nights:        nights,
			BlockedNights: bk.blocked,
			Profitability: ratioPercent(profit, revenue),
		}
		if nights > 0 {
			n := decimal.NewFromInt(int64(nights))
			row.RevenuePerNight = revenue.Div(n)
			row.ProfitPerNight = profit.Div(n)
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Revenue.Equal(rows[j].Revenue) {
			return rows[i].Revenue.GreaterThan(rows[j].Revenue)
		}
		return rows[i].Apartment < rows[j].Apartment
	})

	return rows
}

// ApartmentSummary computes the standalone detail view for one apartment.
func ApartmentSummary(bookings []*domain.Booking, name string) domain.ApartmentSummary {
	stays := make([]*domain.Booking, 0)
	for _, b := range ActiveBookings(bookings) {
		if b.Apartment == name && !b.IsBlocked() {
			stays = append(stays, b)
		}
	}

	summary := domain.ApartmentSummary{
		Name:     name,
		Bookings: len(stays),
		Revenue:  TotalRevenue(stays),
		Nights:   TotalNights(stays),
	}
	if summary.Nights > 0 {
		summary.AverageNightlyRate = summary.Revenue.Div(decimal.NewFromInt(int64(summary.Nights)))
	}
	if summary.Bookings > 0 {
		summary.AverageStay = float64(summary.Nights) / float64(summary.Bookings)
	}
	if years := AvailableYears(stays); len(years) > 0 {
		// Occupancy of the most recent year with data.
		summary.OccupancyRate = OccupancyRate(stays, years[len(years)-1], "")
	}
	return summary
}
