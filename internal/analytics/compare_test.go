package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
	"github.com/msoliva/atalaya/atalaya-backend/internal/testutil"
)

func TestPercentChange_ZeroGuards(t *testing.T) {
	// Something appeared from nothing: +100%, never Inf.
	assert.Equal(t, 100.0, PercentChange(decimal.NewFromInt(500), decimal.Zero))

	// Nothing before, nothing now: 0%, never NaN.
	assert.Equal(t, 0.0, PercentChange(decimal.Zero, decimal.Zero))

	// Regular case.
	assert.InDelta(t, 50.0, PercentChange(decimal.NewFromInt(150), decimal.NewFromInt(100)), 0.0001)

	// Decline.
	assert.InDelta(t, -25.0, PercentChange(decimal.NewFromInt(75), decimal.NewFromInt(100)), 0.0001)
}

func TestPercentChangeFloat_ZeroGuards(t *testing.T) {
	assert.Equal(t, 100.0, PercentChangeFloat(42.0, 0))
	assert.Equal(t, 0.0, PercentChangeFloat(0, 0))
	assert.InDelta(t, -50.0, PercentChangeFloat(25, 50), 0.0001)
}

func TestPercentChangeInt(t *testing.T) {
	assert.Equal(t, 100.0, PercentChangeInt(7, 0))
	assert.InDelta(t, 10.0, PercentChangeInt(11, 10), 0.0001)
}

func TestYearMetrics(t *testing.T) {
	bookings := []*domain.Booking{
		testutil.NewBooking(2024, 3, testutil.WithNights(10), testutil.WithPrice(1000, 600)),
		testutil.NewBooking(2024, 8, testutil.WithNights(5), testutil.WithPrice(500, 300)),
		testutil.NewBooking(2023, 3, testutil.WithPrice(9999, 9999)),
		testutil.NewBooking(2024, 4, testutil.WithPrice(5000, 5000), testutil.WithStatus(domain.StatusCancelled)),
	}

	m := YearMetrics(bookings, 2024)
	assert.Equal(t, 2024, m.Year)
	assert.True(t, m.HasData)
	assert.Equal(t, 2, m.Bookings)
	assert.Equal(t, 15, m.Nights)
	assert.True(t, m.Revenue.Equal(decimal.NewFromInt(1500)), "got %s", m.Revenue)
	assert.True(t, m.Profit.Equal(decimal.NewFromInt(900)))
	assert.True(t, m.ADR.Equal(decimal.NewFromInt(100)))
	require.Len(t, m.MonthlyData, 12)
}

func TestYearMetrics_EmptyYear(t *testing.T) {
	bookings := []*domain.Booking{testutil.NewBooking(2024, 3)}

	m := YearMetrics(bookings, 2021)
	assert.False(t, m.HasData)
	assert.Equal(t, 2021, m.Year)
	assert.Zero(t, m.Bookings)
	assert.True(t, m.Revenue.IsZero())
	assert.Zero(t, m.OccupancyRate)
	// The monthly series still has twelve zeroed entries for chart alignment.
	require.Len(t, m.MonthlyData, 12)
}

func TestCompareYears(t *testing.T) {
	bookings := []*domain.Booking{
		testutil.NewBooking(2024, 3, testutil.WithPrice(1500, 900)),
		testutil.NewBooking(2023, 3, testutil.WithPrice(1000, 600)),
	}

	result := CompareYears(bookings, 2024, []int{2023, 2022})
	assert.Equal(t, 2024, result.CurrentYear.Year)
	require.Len(t, result.Comparisons, 2)

	vs2023 := result.Comparisons[0]
	assert.Equal(t, 2023, vs2023.Year)
	assert.True(t, vs2023.HasData)
	assert.InDelta(t, 50.0, vs2023.Changes.Revenue, 0.0001)
	assert.InDelta(t, 50.0, vs2023.Changes.Profit, 0.0001)
	require.Len(t, vs2023.Monthly, 12)

	// A year with no data is reported explicitly, never fabricated.
	vs2022 := result.Comparisons[1]
	assert.Equal(t, 2022, vs2022.Year)
	assert.False(t, vs2022.HasData)
	assert.True(t, vs2022.Revenue.IsZero())
	// Current year has revenue, empty year has none: +100%.
	assert.Equal(t, 100.0, vs2022.Changes.Revenue)
}

func TestCompareYears_MonthlyPairing(t *testing.T) {
	bookings := []*domain.Booking{
		testutil.NewBooking(2024, 3, testutil.WithPrice(200, 100)),
		testutil.NewBooking(2023, 3, testutil.WithPrice(100, 50)),
	}

	result := CompareYears(bookings, 2024, []int{2023})
	require.Len(t, result.Comparisons, 1)

	monthly := result.Comparisons[0].Monthly
	require.Len(t, monthly, 12)

	marzo := monthly[2]
	assert.Equal(t, "Marzo", marzo.Month)
	assert.True(t, marzo.Current.Revenue.Equal(decimal.NewFromInt(200)))
	assert.True(t, marzo.Previous.Revenue.Equal(decimal.NewFromInt(100)))
	assert.InDelta(t, 100.0, marzo.Changes.Revenue, 0.0001)

	// Months with no data on either side compare as zero change.
	enero := monthly[0]
	assert.Equal(t, 0.0, enero.Changes.Revenue)
}

func TestSummary(t *testing.T) {
	bookings := []*domain.Booking{
		testutil.NewBooking(2024, 3, testutil.WithNights(10), testutil.WithPrice(1000, 600)),
		testutil.NewBooking(2024, 3, testutil.WithPrice(500, 500), testutil.WithStatus(domain.StatusCancelled)),
	}

	summary := Summary(bookings, 2024, "Marzo")
	assert.Equal(t, 1, summary.Bookings)
	assert.Equal(t, 10, summary.Nights)
	assert.True(t, summary.Revenue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, summary.Profit.Equal(decimal.NewFromInt(600)))
	assert.InDelta(t, 60.0, summary.Profitability, 0.0001)
	// 10 nights over 31 days, one apartment.
	assert.InDelta(t, 10.0/31.0*100, summary.Occupancy, 0.0001)
}
