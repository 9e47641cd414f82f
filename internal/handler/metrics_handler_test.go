package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msoliva/atalaya/atalaya-backend/internal/cache"
	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
	"github.com/msoliva/atalaya/atalaya-backend/internal/service"
	"github.com/msoliva/atalaya/atalaya-backend/internal/testutil"
)

func newTestMetricsHandler(t *testing.T, router *service.DataRouter) *MetricsHandler {
	t.Helper()
	bookings := service.NewBookingService(router, testUserApartments)
	metrics := service.NewMetricsService(bookings, cache.New(time.Minute), nil)
	return NewMetricsHandler(metrics)
}

func TestMetricsSummary(t *testing.T) {
	router := newTestRouter(t,
		testutil.NewBooking(2024, 3, testutil.WithApartment("Trindade 1"), testutil.WithNights(10), testutil.WithPrice(1000, 600)),
	)
	h := newTestMetricsHandler(t, router)

	c, rec := newTestContext(t, http.MethodGet, "/api/metrics/summary?year=2024", domain.RoleAdmin)
	require.NoError(t, h.Summary(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var summary domain.MetricsSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.Bookings)
	assert.Equal(t, 10, summary.Nights)
}

func TestMetricsSummary_InvalidYear(t *testing.T) {
	router := newTestRouter(t)
	h := newTestMetricsHandler(t, router)

	c, rec := newTestContext(t, http.MethodGet, "/api/metrics/summary?year=20x4", domain.RoleAdmin)
	require.NoError(t, h.Summary(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsMonthly(t *testing.T) {
	router := newTestRouter(t,
		testutil.NewBooking(2024, 3, testutil.WithApartment("Trindade 1")),
	)
	h := newTestMetricsHandler(t, router)

	c, rec := newTestContext(t, http.MethodGet, "/api/metrics/monthly/2024", domain.RoleAdmin)
	c.SetParamNames("year")
	c.SetParamValues("2024")
	require.NoError(t, h.Monthly(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Year   int                     `json:"year"`
		Months []domain.MonthlyMetrics `json:"months"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2024, body.Year)
	require.Len(t, body.Months, 12)
	assert.Equal(t, 1, body.Months[2].Bookings)
}

func TestMetricsComparison_RequiresParams(t *testing.T) {
	router := newTestRouter(t)
	h := newTestMetricsHandler(t, router)

	c, rec := newTestContext(t, http.MethodGet, "/api/metrics/comparison", domain.RoleAdmin)
	require.NoError(t, h.Comparison(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newTestContext(t, http.MethodGet, "/api/metrics/comparison?year=2024", domain.RoleAdmin)
	require.NoError(t, h.Comparison(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsComparison(t *testing.T) {
	router := newTestRouter(t,
		testutil.NewBooking(2024, 3, testutil.WithApartment("Trindade 1"), testutil.WithPrice(1500, 900)),
		testutil.NewBooking(2023, 3, testutil.WithApartment("Trindade 1"), testutil.WithPrice(1000, 600)),
	)
	h := newTestMetricsHandler(t, router)

	c, rec := newTestContext(t, http.MethodGet, "/api/metrics/comparison?year=2024&compare=2023,2022", domain.RoleAdmin)
	require.NoError(t, h.Comparison(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		CurrentYear struct {
			Year int `json:"year"`
		} `json:"currentYear"`
		Comparisons []struct {
			Year    int  `json:"year"`
			HasData bool `json:"hasData"`
		} `json:"comparisonData"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2024, body.CurrentYear.Year)
	require.Len(t, body.Comparisons, 2)
	assert.True(t, body.Comparisons[0].HasData)
	assert.False(t, body.Comparisons[1].HasData)
}

func TestApartmentSummary_Forbidden(t *testing.T) {
	router := newTestRouter(t,
		testutil.NewBooking(2024, 3, testutil.WithApartment("Trindade 3")),
	)
	h := newTestMetricsHandler(t, router)

	c, rec := newTestContext(t, http.MethodGet, "/api/apartments/Trindade%203/summary", domain.RoleUser)
	c.SetParamNames("name")
	c.SetParamValues("Trindade 3")
	require.NoError(t, h.ApartmentSummary(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestApartmentSummary_NotFound(t *testing.T) {
	router := newTestRouter(t)
	h := newTestMetricsHandler(t, router)

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/apartments/Nowhere/summary", domain.RoleAdmin)
	c.SetParamNames("name")
	c.SetParamValues("Nowhere")
	require.NoError(t, h.ApartmentSummary(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsSources(t *testing.T) {
	router := newTestRouter(t,
		testutil.NewBooking(2024, 3, testutil.WithApartment("Trindade 1"), testutil.WithChannel("")),
	)
	h := newTestMetricsHandler(t, router)

	c, rec := newTestContext(t, http.MethodGet, "/api/metrics/sources", domain.RoleAdmin)
	require.NoError(t, h.Sources(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Sources []domain.ChannelMetrics `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Sources, 1)
	assert.Equal(t, domain.ChannelUnknown, body.Sources[0].Channel)
}
