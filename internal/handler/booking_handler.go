package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
	"github.com/msoliva/atalaya/atalaya-backend/internal/middleware"
	"github.com/msoliva/atalaya/atalaya-backend/internal/service"
)

// BookingHandler handles booking listing and lookup endpoints
type BookingHandler struct {
	bookings *service.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// List handles GET /bookings
func (h *BookingHandler) List(c echo.Context) error {
	filter, verr := parseBookingFilter(c)
	if verr != nil {
		return NewValidationError(c, "Invalid filter parameters", verr)
	}

	role := middleware.GetRole(c)
	bookings, err := h.bookings.GetFilteredBookings(c.Request().Context(), role, filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch bookings")
		return NewInternalError(c, "Failed to fetch bookings")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// Apartments handles GET /bookings/apartments
func (h *BookingHandler) Apartments(c echo.Context) error {
	role := middleware.GetRole(c)
	names, err := h.bookings.GetApartmentNames(c.Request().Context(), role)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch apartment names")
		return NewInternalError(c, "Failed to fetch apartment names")
	}
	return c.JSON(http.StatusOK, map[string]any{"apartments": names})
}

// Years handles GET /bookings/years
func (h *BookingHandler) Years(c echo.Context) error {
	role := middleware.GetRole(c)
	years, err := h.bookings.AvailableYears(c.Request().Context(), role)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch available years")
		return NewInternalError(c, "Failed to fetch available years")
	}
	return c.JSON(http.StatusOK, map[string]any{"years": years})
}

// Months handles GET /bookings/years/:year/months
func (h *BookingHandler) Months(c echo.Context) error {
	year, err := parseYearParam(c.Param("year"))
	if err != nil {
		return NewValidationError(c, "Invalid year", []ValidationError{
			{Field: "year", Message: err.Error()},
		})
	}

	role := middleware.GetRole(c)
	months, err := h.bookings.AvailableMonths(c.Request().Context(), role, year)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch available months")
		return NewInternalError(c, "Failed to fetch available months")
	}
	return c.JSON(http.StatusOK, map[string]any{"year": year, "months": months})
}

// parseBookingFilter builds a BookingFilter from query parameters. It
// collects every validation error instead of failing on the first one.
func parseBookingFilter(c echo.Context) (*domain.BookingFilter, []ValidationError) {
	var errs []ValidationError
	filter := &domain.BookingFilter{}

	if v := c.QueryParam("year"); v != "" {
		year, err := parseYearParam(v)
		if err != nil {
			errs = append(errs, ValidationError{Field: "year", Message: err.Error()})
		} else {
			filter.Year = year
		}
	}

	if v := c.QueryParam("month"); v != "" && !strings.EqualFold(v, domain.FilterAll) {
		if _, ok := domain.MonthIndex(v); !ok {
			errs = append(errs, ValidationError{Field: "month", Message: domain.ErrInvalidMonth.Error()})
		} else {
			filter.Month = v
		}
	}

	if v := c.QueryParam("apartment"); v != "" && !strings.EqualFold(v, domain.FilterAll) {
		filter.Apartments = strings.Split(v, ",")
	}

	if v := c.QueryParam("channel"); v != "" {
		filter.Channel = v
	}

	if v := c.QueryParam("paid"); v != "" && !strings.EqualFold(v, domain.FilterAll) {
		paid, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, ValidationError{Field: "paid", Message: "must be true or false"})
		} else {
			filter.Paid = &paid
		}
	}

	if v := c.QueryParam("from"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			errs = append(errs, ValidationError{Field: "from", Message: "must be YYYY-MM-DD"})
		} else {
			filter.DateRange.From = &from
		}
	}

	if v := c.QueryParam("to"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			errs = append(errs, ValidationError{Field: "to", Message: "must be YYYY-MM-DD"})
		} else {
			filter.DateRange.To = &to
		}
	}

	if filter.DateRange.From != nil && filter.DateRange.To != nil &&
		filter.DateRange.To.Before(*filter.DateRange.From) {
		errs = append(errs, ValidationError{Field: "to", Message: "must not be before from"})
	}

	if v := c.QueryParam("compare"); v != "" {
		years, err := parseYearList(v)
		if err != nil {
			errs = append(errs, ValidationError{Field: "compare", Message: err.Error()})
		} else {
			filter.CompareMode = true
			filter.CompareYears = years
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return filter, nil
}

func parseYearParam(v string) (int, error) {
	year, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.ErrInvalidYear
	}
	if year < 2000 || year > 2100 {
		return 0, domain.ErrInvalidYear
	}
	return year, nil
}

func parseYearList(v string) ([]int, error) {
	parts := strings.Split(v, ",")
	years := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		year, err := parseYearParam(p)
		if err != nil {
			return nil, err
		}
		years = append(years, year)
	}
	return years, nil
}
