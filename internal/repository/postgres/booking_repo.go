// Package postgres implements the booking repository over the Postgres
// (Neon) mirror of the bookings sheet.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
)

const bookingColumns = `
	id, created_at, check_in, check_out, apartment, guest,
	adults, children, nights, status, booking_portal,
	price, nightly_average, cleaning_fee, commission, total,
	paid, year, month, profit, notes`

// BookingRepository implements domain.BookingRepository using PostgreSQL.
type BookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository creates a new BookingRepository.
func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// GetAll retrieves every booking record ordered by check-in date.
func (r *BookingRepository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY check_in`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("bookings.GetAll: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByApartment retrieves the bookings of a single apartment.
func (r *BookingRepository) GetByApartment(ctx context.Context, apartment string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE apartment = $1 ORDER BY check_in`

	rows, err := r.pool.Query(ctx, query, apartment)
	if err != nil {
		return nil, fmt.Errorf("bookings.GetByApartment: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetApartmentNames retrieves the distinct apartment names.
func (r *BookingRepository) GetApartmentNames(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT apartment FROM bookings WHERE apartment <> '' ORDER BY apartment`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("bookings.GetApartmentNames: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("bookings.GetApartmentNames: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func scanBookings(rows pgx.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b := &domain.Booking{}
		if err := rows.Scan(
			&b.ID,
			&b.CreatedAt,
			&b.CheckIn,
			&b.CheckOut,
			&b.Apartment,
			&b.Guest,
			&b.Adults,
			&b.Children,
			&b.Nights,
			&b.Status,
			&b.Channel,
			&b.Price,
			&b.NightlyAverage,
			&b.CleaningFee,
			&b.Commission,
			&b.Total,
			&b.Paid,
			&b.Year,
			&b.Month,
			&b.Profit,
			&b.Notes,
		); err != nil {
			return nil, fmt.Errorf("bookings.scan: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
