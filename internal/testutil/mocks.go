// Package testutil provides mocks and fixture builders shared by the
// service and handler tests.
package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
	"github.com/msoliva/atalaya/atalaya-backend/internal/websocket"
)

// MockBookingRepository is an in-memory implementation of
// domain.BookingRepository. It counts calls so cache tests can assert
// whether the source was actually hit.
type MockBookingRepository struct {
	Bookings []*domain.Booking
	Err      error

	GetAllCalls         int
	GetByApartmentCalls int
}

// NewMockBookingRepository creates a MockBookingRepository over the fixtures.
func NewMockBookingRepository(bookings ...*domain.Booking) *MockBookingRepository {
	return &MockBookingRepository{Bookings: bookings}
}

// GetAll returns every fixture booking.
func (m *MockBookingRepository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	m.GetAllCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Bookings, nil
}

// GetByApartment returns the fixtures for one apartment.
func (m *MockBookingRepository) GetByApartment(ctx context.Context, apartment string) ([]*domain.Booking, error) {
	m.GetByApartmentCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*domain.Booking, 0)
	for _, b := range m.Bookings {
		if b.Apartment == apartment {
			out = append(out, b)
		}
	}
	return out, nil
}

// GetApartmentNames returns the distinct apartment names in fixture order.
func (m *MockBookingRepository) GetApartmentNames(ctx context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, b := range m.Bookings {
		if b.Apartment == "" {
			continue
		}
		if _, ok := seen[b.Apartment]; ok {
			continue
		}
		seen[b.Apartment] = struct{}{}
		names = append(names, b.Apartment)
	}
	return names, nil
}

// MockPublisher records published events.
type MockPublisher struct {
	Events []websocket.Event
}

// Publish implements websocket.EventPublisher.
func (m *MockPublisher) Publish(event websocket.Event) {
	m.Events = append(m.Events, event)
}

// BookingOption mutates a fixture booking.
type BookingOption func(*domain.Booking)

var fixtureSeq int

// NewBooking builds a confirmed booking fixture with sensible defaults and
// applies the options. Dates derive from year and monthIndex (1-based).
func NewBooking(year, monthIndex int, opts ...BookingOption) *domain.Booking {
	fixtureSeq++
	checkIn := time.Date(year, time.Month(monthIndex), 10, 0, 0, 0, 0, time.UTC)
	b := &domain.Booking{
		ID:             fmt.Sprintf("rec%04d", fixtureSeq),
		CreatedAt:      checkIn.AddDate(0, -1, 0),
		CheckIn:        checkIn,
		CheckOut:       checkIn.AddDate(0, 0, 3),
		Apartment:      "Trindade 1",
		Guest:          "Guest",
		Adults:         2,
		Nights:         3,
		Status:         domain.StatusConfirmed,
		Channel:        "Booking.com",
		Price:          decimal.NewFromInt(300),
		NightlyAverage: decimal.NewFromInt(100),
		CleaningFee:    decimal.NewFromInt(40),
		Commission:     decimal.NewFromInt(60),
		Total:          decimal.NewFromInt(300),
		Profit:         decimal.NewFromInt(200),
		Paid:           true,
		Year:           year,
		Month:          domain.MonthNames[monthIndex-1],
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// WithApartment sets the apartment name.
func WithApartment(name string) BookingOption {
	return func(b *domain.Booking) { b.Apartment = name }
}

// WithStatus sets the booking status.
func WithStatus(status string) BookingOption {
	return func(b *domain.Booking) { b.Status = status }
}

// WithChannel sets the booking channel.
func WithChannel(channel string) BookingOption {
	return func(b *domain.Booking) { b.Channel = channel }
}

// WithNights sets the night count and stretches the check-out to match.
func WithNights(nights int) BookingOption {
	return func(b *domain.Booking) {
		b.Nights = nights
		b.CheckOut = b.CheckIn.AddDate(0, 0, nights)
	}
}

// WithPrice sets price, total and profit from whole euro amounts.
func WithPrice(price, profit int64) BookingOption {
	return func(b *domain.Booking) {
		b.Price = decimal.NewFromInt(price)
		b.Total = decimal.NewFromInt(price)
		b.Profit = decimal.NewFromInt(profit)
	}
}

// WithPaid sets the payment flag.
func WithPaid(paid bool) BookingOption {
	return func(b *domain.Booking) { b.Paid = paid }
}

// WithCheckIn overrides the stay window keeping the night count.
func WithCheckIn(checkIn time.Time) BookingOption {
	return func(b *domain.Booking) {
		b.CheckIn = checkIn
		b.CheckOut = checkIn.AddDate(0, 0, b.Nights)
	}
}
