package airtable

import (
	"testing"
	"time"

	"github.com/mehanizm/airtable"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
)

func TestParseBool(t *testing.T) {
	truthy := []any{true, "sí", "Si", " YES ", "true", "1"}
	for _, v := range truthy {
		assert.True(t, parseBool(v), "expected %v to parse as true", v)
	}

	falsy := []any{false, "no", "", nil, 1.0, "0"}
	for _, v := range falsy {
		assert.False(t, parseBool(v), "expected %v to parse as false", v)
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, parseDate("2024-03-15"))
	assert.Equal(t, want, parseDate("15/03/2024"))
	assert.Equal(t, want, parseDate("2024-03-15T00:00:00Z"))

	assert.True(t, parseDate("not a date").IsZero())
	assert.True(t, parseDate("").IsZero())
	assert.True(t, parseDate(nil).IsZero())
	assert.True(t, parseDate(42.0).IsZero())
}

func TestParseDecimal(t *testing.T) {
	assert.True(t, parseDecimal(123.45).Equal(decimal.NewFromFloat(123.45)))
	assert.True(t, parseDecimal("99.50").Equal(decimal.NewFromFloat(99.5)))
	assert.True(t, parseDecimal("garbage").IsZero())
	assert.True(t, parseDecimal(nil).IsZero())
}

func TestParseFloat(t *testing.T) {
	assert.Equal(t, 3.0, parseFloat(3.0))
	assert.Equal(t, 0.0, parseFloat("3"))
	assert.Equal(t, 0.0, parseFloat(nil))
}

func TestRecordToBooking(t *testing.T) {
	record := &airtable.Record{
		ID: "recABC123",
		Fields: map[string]any{
			fieldCheckIn:    "2024-03-10",
			fieldCheckOut:   "2024-03-13",
			fieldApartment:  " Trindade 1 ",
			fieldGuest:      "Ana",
			fieldAdults:     2.0,
			fieldNights:     3.0,
			fieldStatus:     domain.StatusConfirmed,
			fieldChannel:    "Airbnb",
			fieldPrice:      300.0,
			fieldPaid:       "sí",
			fieldYear:       2024.0,
			fieldMonth:      "Marzo",
			fieldProfit:     200.0,
			fieldCommission: 60.0,
		},
	}

	b := recordToBooking(record)
	assert.Equal(t, "recABC123", b.ID)
	assert.Equal(t, "Trindade 1", b.Apartment)
	assert.Equal(t, 3, b.Nights)
	assert.Equal(t, 2024, b.Year)
	assert.Equal(t, "Marzo", b.Month)
	assert.True(t, b.Paid)
	assert.True(t, b.Price.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), b.CheckIn)
}

func TestRecordToBooking_YearFallbackFromCheckIn(t *testing.T) {
	record := &airtable.Record{
		ID: "recDEF456",
		Fields: map[string]any{
			fieldCheckIn: "2023-08-01",
			fieldStatus:  domain.StatusConfirmed,
		},
	}

	b := recordToBooking(record)
	assert.Equal(t, 2023, b.Year)
}
