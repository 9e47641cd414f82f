package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Booking statuses as they come from the booking sheet. The sheet is
// hand-maintained, so both spellings of "cancelled" show up in real data.
const (
	StatusConfirmed    = "Reservado"
	StatusCancelled    = "Cancelado"
	StatusCancelledAlt = "Cancelada"
	StatusBlocked      = "Bloqueado"
)

// Booking channels. Free text in the source data; these are the common values.
const (
	ChannelAirbnb  = "Airbnb"
	ChannelBooking = "Booking.com"
	ChannelDirect  = "Directo"
	ChannelVrbo    = "Vrbo"
	// ChannelUnknown is the bucket for bookings without a channel value.
	ChannelUnknown = "Desconocido"
)

// Booking represents one reservation, cancellation or calendar block for
// one apartment. Records are read-only snapshots from the data source;
// all derived metrics are computed fresh, never written back.
type Booking struct {
	ID             string          `json:"id"`
	CreatedAt      time.Time       `json:"createdAt"`
	CheckIn        time.Time       `json:"checkIn"`
	CheckOut       time.Time       `json:"checkOut"`
	Apartment      string          `json:"apartment"`
	Guest          string          `json:"guest,omitempty"`
	Adults         int             `json:"adults"`
	Children       int             `json:"children"`
	Nights         int             `json:"nights"`
	Status         string          `json:"status"`
	Channel        string          `json:"bookingPortal"`
	Price          decimal.Decimal `json:"price"`
	NightlyAverage decimal.Decimal `json:"nightlyAverage"`
	CleaningFee    decimal.Decimal `json:"cleaningFee"`
	Commission     decimal.Decimal `json:"commission"`
	Total          decimal.Decimal `json:"total"`
	Paid           bool            `json:"paid"`
	Year           int             `json:"year"`
	Month          string          `json:"month"`
	Profit         decimal.Decimal `json:"profit"`
	Notes          string          `json:"notes,omitempty"`
}

// IsCancelled reports whether the booking is a cancellation and must be
// excluded from every financial and occupancy aggregate.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled || b.Status == StatusCancelledAlt
}

// IsBlocked reports whether the booking is a calendar block (maintenance,
// owner stay). Blocked nights are tracked separately from revenue.
func (b *Booking) IsBlocked() bool {
	return b.Status == StatusBlocked
}

// MonthName returns the canonical month name for the booking. When the
// sheet's month column is empty it is derived from the check-in date.
func (b *Booking) MonthName() string {
	if b.Month != "" {
		return b.Month
	}
	if !b.CheckIn.IsZero() {
		return MonthOfTime(b.CheckIn)
	}
	return ""
}

// ChannelOrUnknown returns the booking channel, bucketing empty values
// under the explicit unknown label instead of dropping them.
func (b *Booking) ChannelOrUnknown() string {
	if b.Channel == "" {
		return ChannelUnknown
	}
	return b.Channel
}

// BookingRepository is the read-only contract every booking data source
// (Airtable, Postgres) implements.
type BookingRepository interface {
	GetAll(ctx context.Context) ([]*Booking, error)
	GetByApartment(ctx context.Context, apartment string) ([]*Booking, error)
	GetApartmentNames(ctx context.Context) ([]string, error)
}
