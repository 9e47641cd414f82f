package analytics

import (
	"sort"

	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
)

// BookingSources groups active bookings by channel with count, revenue and
// share of total bookings. Bookings without a channel are bucketed under
// the explicit unknown label rather than dropped. Rows are ordered by
// booking count, highest first.
func BookingSources(bookings []*domain.Booking) []domain.ChannelMetrics {
	active := ActiveBookings(bookings)

	order := make([]string, 0)
	buckets := make(map[string]*domain.ChannelMetrics)
	for _, b := range active {
		channel := b.ChannelOrUnknown()
		row, ok := buckets[channel]
		if !ok {
			row = &domain.ChannelMetrics{Channel: channel}
			buckets[channel] = row
			order = append(order, channel)
		}
		row.Bookings++
		row.Revenue = row.Revenue.Add(b.Price)
	}

	total := len(active)
	rows := make([]domain.ChannelMetrics, 0, len(order))
	for _, channel := range order {
		row := *buckets[channel]
		if total > 0 {
			row.Percentage = float64(row.Bookings) / float64(total) * 100
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Bookings != rows[j].Bookings {
			return rows[i].Bookings > rows[j].Bookings
		}
		return rows[i].Channel < rows[j].Channel
	})

	return rows
}
