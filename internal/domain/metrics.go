package domain

import "github.com/shopspring/decimal"

// MonthlyMetrics holds the aggregates for one calendar month. Chart series
// downstream bind to these field names, so they are stable.
type MonthlyMetrics struct {
	Name          string          `json:"name"`     // three-letter label
	Month         string          `json:"fullName"` // canonical month name
	Revenue       decimal.Decimal `json:"revenue"`
	Profit        decimal.Decimal `json:"profit"`
	Bookings      int             `json:"bookings"`
	Nights        int             `json:"nights"`
	Occupancy     float64         `json:"occupancy"` // percent, 0-100
	Commissions   decimal.Decimal `json:"commissions"`
	CleaningFees  decimal.Decimal `json:"cleaningFees"`
	Profitability float64         `json:"profitability"` // percent, may be negative
}

// ApartmentMetrics is the per-apartment rollup row. Blocked nights carry
// no revenue but are reported for capacity planning.
type ApartmentMetrics struct {
	Apartment       string          `json:"apartment"`
	Bookings        int             `json:"bookings"`
	Revenue         decimal.Decimal `json:"revenue"`
	Profit          decimal.Decimal `json:"profit"`
	Nights          int             `json:"nights"`
	BlockedNights   int             `json:"blockedNights"`
	Profitability   float64         `json:"profitability"`
	RevenuePerNight decimal.Decimal `json:"revenuePerNight"`
	ProfitPerNight  decimal.Decimal `json:"profitPerNight"`
}

// ChannelMetrics is the per-booking-channel rollup row.
type ChannelMetrics struct {
	Channel    string          `json:"name"`
	Bookings   int             `json:"bookings"`
	Revenue    decimal.Decimal `json:"revenue"`
	Percentage float64         `json:"percentage"` // share of active bookings
}

// MetricsSummary holds the headline figures for a filtered booking set.
type MetricsSummary struct {
	Revenue            decimal.Decimal `json:"revenue"`
	Profit             decimal.Decimal `json:"profit"`
	Commissions        decimal.Decimal `json:"commissions"`
	CleaningFees       decimal.Decimal `json:"cleaningFees"`
	AverageNightlyRate decimal.Decimal `json:"averageNightlyRate"`
	ADR                decimal.Decimal `json:"adr"`
	RevPAR             decimal.Decimal `json:"revPAR"`
	Occupancy          float64         `json:"occupancy"`
	Profitability      float64         `json:"profitability"`
	Bookings           int             `json:"bookings"`
	Nights             int             `json:"nights"`
}

// YearMetrics holds the full-year figures used by the comparison engine.
// HasData distinguishes a genuinely empty year from an all-zero one, so
// callers can render "no data" instead of fabricated numbers.
type YearMetrics struct {
	Year          int              `json:"year"`
	Revenue       decimal.Decimal  `json:"revenue"`
	Profit        decimal.Decimal  `json:"profit"`
	OccupancyRate float64          `json:"occupancyRate"`
	ADR           decimal.Decimal  `json:"adr"`
	RevPAR        decimal.Decimal  `json:"revPAR"`
	Bookings      int              `json:"bookings"`
	Nights        int              `json:"nights"`
	HasData       bool             `json:"hasData"`
	MonthlyData   []MonthlyMetrics `json:"monthlyData"`
}

// MetricChanges carries percent changes for each year-level metric.
type MetricChanges struct {
	Revenue       float64 `json:"revenue"`
	Profit        float64 `json:"profit"`
	OccupancyRate float64 `json:"occupancyRate"`
	ADR           float64 `json:"adr"`
	RevPAR        float64 `json:"revPAR"`
	Bookings      float64 `json:"bookings"`
	Nights        float64 `json:"nights"`
}

// MonthChanges carries percent changes for one paired month.
type MonthChanges struct {
	Revenue   float64 `json:"revenue"`
	Profit    float64 `json:"profit"`
	Occupancy float64 `json:"occupancy"`
	Bookings  float64 `json:"bookings"`
	Nights    float64 `json:"nights"`
}

// MonthComparison pairs one calendar month across two years for
// side-by-side charting.
type MonthComparison struct {
	Month    string         `json:"month"`
	Current  MonthlyMetrics `json:"current"`
	Previous MonthlyMetrics `json:"previous"`
	Changes  MonthChanges   `json:"percentChanges"`
}

// YearComparisonEntry is one comparison year with its deltas against the
// primary year.
type YearComparisonEntry struct {
	YearMetrics
	Changes MetricChanges     `json:"percentChanges"`
	Monthly []MonthComparison `json:"monthlyComparison"`
}

// YearComparison is the result of comparing a primary year against one or
// more other years.
type YearComparison struct {
	CurrentYear YearMetrics           `json:"currentYear"`
	Comparisons []YearComparisonEntry `json:"comparisonData"`
}

// ApartmentSummary is the standalone per-apartment view used by the
// apartment detail page.
type ApartmentSummary struct {
	Name               string          `json:"name"`
	Bookings           int             `json:"bookings"`
	Revenue            decimal.Decimal `json:"totalRevenue"`
	Nights             int             `json:"totalNights"`
	AverageNightlyRate decimal.Decimal `json:"averageNightlyRate"`
	AverageStay        float64         `json:"averageStay"`
	OccupancyRate      float64         `json:"occupancyRate"`
}
