package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/msoliva/atalaya/atalaya-backend/internal/analytics"
	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
)

// BookingService fetches booking records from the active data source and
// applies role-based visibility: admins see every apartment, users only
// the configured allowlist.
type BookingService struct {
	router            *DataRouter
	allowedApartments []string
}

// NewBookingService creates a new BookingService. allowedApartments is
// the set of apartment names visible to the "user" role; matching is by
// substring since sheet names carry suffixes ("Trindade 1 - 2D").
func NewBookingService(router *DataRouter, allowedApartments []string) *BookingService {
	return &BookingService{
		router:            router,
		allowedApartments: allowedApartments,
	}
}

// GetBookings returns all bookings visible to the given role.
func (s *BookingService) GetBookings(ctx context.Context, role string) ([]*domain.Booking, error) {
	bookings, err := s.router.Current().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleAdmin {
		return bookings, nil
	}

	visible := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if s.apartmentAllowed(b.Apartment) {
			visible = append(visible, b)
		}
	}
	log.Debug().
		Str("role", role).
		Int("total", len(bookings)).
		Int("visible", len(visible)).
		Msg("Applied apartment allowlist")
	return visible, nil
}

// GetFilteredBookings returns the bookings visible to the role that match
// the filter. The filter is normalized here, once, at the boundary.
func (s *BookingService) GetFilteredBookings(ctx context.Context, role string, filter *domain.BookingFilter) ([]*domain.Booking, error) {
	bookings, err := s.GetBookings(ctx, role)
	if err != nil {
		return nil, err
	}
	if filter != nil {
		filter.Normalize()
	}
	return analytics.FilterBookings(bookings, filter), nil
}

// GetApartmentNames returns the distinct apartment names visible to the role.
func (s *BookingService) GetApartmentNames(ctx context.Context, role string) ([]string, error) {
	names, err := s.router.Current().GetApartmentNames(ctx)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleAdmin {
		return names, nil
	}

	visible := make([]string, 0, len(names))
	for _, name := range names {
		if s.apartmentAllowed(name) {
			visible = append(visible, name)
		}
	}
	return visible, nil
}

// GetApartmentBookings returns the bookings of one apartment, enforcing
// the role allowlist.
func (s *BookingService) GetApartmentBookings(ctx context.Context, role, apartment string) ([]*domain.Booking, error) {
	if role != domain.RoleAdmin && !s.apartmentAllowed(apartment) {
		return nil, domain.ErrForbidden
	}
	return s.router.Current().GetByApartment(ctx, apartment)
}

// AvailableYears returns the sorted distinct booking years visible to the role.
func (s *BookingService) AvailableYears(ctx context.Context, role string) ([]int, error) {
	bookings, err := s.GetBookings(ctx, role)
	if err != nil {
		return nil, err
	}
	return analytics.AvailableYears(bookings), nil
}

// AvailableMonths returns the months with data for a year, in calendar order.
func (s *BookingService) AvailableMonths(ctx context.Context, role string, year int) ([]string, error) {
	bookings, err := s.GetBookings(ctx, role)
	if err != nil {
		return nil, err
	}
	return analytics.AvailableMonths(bookings, year), nil
}

func (s *BookingService) apartmentAllowed(apartment string) bool {
	for _, allowed := range s.allowedApartments {
		if strings.Contains(apartment, allowed) {
			return true
		}
	}
	return false
}
