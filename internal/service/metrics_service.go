package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/msoliva/atalaya/atalaya-backend/internal/analytics"
	"github.com/msoliva/atalaya/atalaya-backend/internal/cache"
	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
	"github.com/msoliva/atalaya/atalaya-backend/internal/websocket"
)

// MetricsService runs the analytics engine over the bookings visible to a
// role, memoizing results in an injected TTL cache. Cached values are
// advisory; every method accepts a bypass flag that forces a fresh
// computation.
type MetricsService struct {
	bookings  *BookingService
	cache     *cache.Cache
	publisher websocket.EventPublisher
}

// NewMetricsService creates a new MetricsService.
func NewMetricsService(bookings *BookingService, c *cache.Cache, publisher websocket.EventPublisher) *MetricsService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &MetricsService{
		bookings:  bookings,
		cache:     c,
		publisher: publisher,
	}
}

// Summary computes the headline metrics for the filtered booking set.
func (s *MetricsService) Summary(ctx context.Context, role string, filter *domain.BookingFilter, bypassCache bool) (*domain.MetricsSummary, error) {
	if filter != nil {
		filter.Normalize()
	}

	filtered, err := s.bookings.GetFilteredBookings(ctx, role, filter)
	if err != nil {
		return nil, err
	}

	year, month := 0, ""
	if filter != nil {
		year, month = filter.Year, filter.Month
	}

	key := cache.Key("summary", role, year, month, len(filtered), filterFingerprint(filter))
	if !bypassCache {
		if v, ok := s.cache.Get(key); ok {
			return v.(*domain.MetricsSummary), nil
		}
	}

	summary := analytics.Summary(filtered, year, month)
	s.cache.Set(key, &summary)
	return &summary, nil
}

// MonthlyData returns the twelve-month breakdown for a year.
func (s *MetricsService) MonthlyData(ctx context.Context, role string, year int, bypassCache bool) ([]domain.MonthlyMetrics, error) {
	bookings, err := s.bookings.GetBookings(ctx, role)
	if err != nil {
		return nil, err
	}

	key := cache.Key("monthly_data", role, year, len(bookings))
	if !bypassCache {
		if v, ok := s.cache.Get(key); ok {
			return v.([]domain.MonthlyMetrics), nil
		}
	}

	months := analytics.MonthlyData(bookings, year)
	s.cache.Set(key, months)
	return months, nil
}

// ApartmentProfitability returns the per-apartment rollup.
func (s *MetricsService) ApartmentProfitability(ctx context.Context, role string, bypassCache bool) ([]domain.ApartmentMetrics, error) {
	bookings, err := s.bookings.GetBookings(ctx, role)
	if err != nil {
		return nil, err
	}

	key := cache.Key("apartment_profitability", role, len(bookings))
	if !bypassCache {
		if v, ok := s.cache.Get(key); ok {
			return v.([]domain.ApartmentMetrics), nil
		}
	}

	rows := analytics.ApartmentProfitability(bookings)
	s.cache.Set(key, rows)
	return rows, nil
}

// BookingSources returns the per-channel rollup.
func (s *MetricsService) BookingSources(ctx context.Context, role string, bypassCache bool) ([]domain.ChannelMetrics, error) {
	bookings, err := s.bookings.GetBookings(ctx, role)
	if err != nil {
		return nil, err
	}

	key := cache.Key("booking_sources", role, len(bookings))
	if !bypassCache {
		if v, ok := s.cache.Get(key); ok {
			return v.([]domain.ChannelMetrics), nil
		}
	}

	rows := analytics.BookingSources(bookings)
	s.cache.Set(key, rows)
	return rows, nil
}

// CompareYears runs the year comparison engine over the full visible set.
// Comparisons deliberately ignore month/apartment/channel filters: they
// always operate on complete yearly sets.
func (s *MetricsService) CompareYears(ctx context.Context, role string, primaryYear int, comparisonYears []int, bypassCache bool) (*domain.YearComparison, error) {
	bookings, err := s.bookings.GetBookings(ctx, role)
	if err != nil {
		return nil, err
	}

	key := cache.Key("year_comparison", role, primaryYear, intsFingerprint(comparisonYears), len(bookings))
	if !bypassCache {
		if v, ok := s.cache.Get(key); ok {
			return v.(*domain.YearComparison), nil
		}
	}

	comparison := analytics.CompareYears(bookings, primaryYear, comparisonYears)
	s.cache.Set(key, &comparison)
	return &comparison, nil
}

// ApartmentSummary returns the detail view for a single apartment. An
// apartment with no records at all is a not-found, not an all-zero summary.
func (s *MetricsService) ApartmentSummary(ctx context.Context, role, apartment string) (*domain.ApartmentSummary, error) {
	bookings, err := s.bookings.GetApartmentBookings(ctx, role, apartment)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, domain.ErrApartmentNotFound
	}
	summary := analytics.ApartmentSummary(bookings, apartment)
	return &summary, nil
}

// InvalidatePrefix drops cached results whose key starts with the prefix
// and notifies connected clients.
func (s *MetricsService) InvalidatePrefix(prefix string) int {
	dropped := s.cache.InvalidatePrefix(prefix)
	if dropped > 0 {
		s.publisher.Publish(websocket.CacheInvalidated(map[string]any{
			"prefix":  prefix,
			"dropped": dropped,
		}))
	}
	return dropped
}

// SwitchDataSource toggles the active booking source, clears all cached
// metrics and notifies connected clients. Returns the new source name.
func (s *MetricsService) SwitchDataSource(router *DataRouter) (string, error) {
	name, err := router.Toggle()
	if err != nil {
		return name, err
	}

	s.cache.Clear()
	s.publisher.Publish(websocket.SourceSwitched(map[string]any{
		"source":     name,
		"switchedAt": time.Now().UTC(),
	}))
	log.Info().Str("source", name).Msg("Cleared metrics cache after source switch")
	return name, nil
}

// filterFingerprint folds the filter dimensions that affect results into
// the cache key.
func filterFingerprint(f *domain.BookingFilter) string {
	if f == nil {
		return "nofilter"
	}
	key := cache.Key("f", f.Year, f.Month, f.Channel, f.CompareMode)
	for _, a := range f.Apartments {
		key = cache.Key(key, a)
	}
	for _, y := range f.CompareYears {
		key = cache.Key(key, y)
	}
	if f.Paid != nil {
		key = cache.Key(key, *f.Paid)
	}
	if f.DateRange.From != nil {
		key = cache.Key(key, f.DateRange.From.Format("2006-01-02"))
	}
	if f.DateRange.To != nil {
		key = cache.Key(key, f.DateRange.To.Format("2006-01-02"))
	}
	return key
}

func intsFingerprint(v []int) string {
	key := "y"
	for _, n := range v {
		key = cache.Key(key, n)
	}
	return key
}
