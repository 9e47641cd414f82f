package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
	"github.com/msoliva/atalaya/atalaya-backend/internal/middleware"
	"github.com/msoliva/atalaya/atalaya-backend/internal/service"
)

// MetricsHandler handles the analytics endpoints
type MetricsHandler struct {
	metrics *service.MetricsService
}

// NewMetricsHandler creates a new MetricsHandler
func NewMetricsHandler(metrics *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Summary handles GET /metrics/summary
func (h *MetricsHandler) Summary(c echo.Context) error {
	filter, verr := parseBookingFilter(c)
	if verr != nil {
		return NewValidationError(c, "Invalid filter parameters", verr)
	}

	role := middleware.GetRole(c)
	summary, err := h.metrics.Summary(c.Request().Context(), role, filter, bypassCache(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute metrics summary")
		return NewInternalError(c, "Failed to compute metrics summary")
	}
	return c.JSON(http.StatusOK, summary)
}

// Monthly handles GET /metrics/monthly/:year
func (h *MetricsHandler) Monthly(c echo.Context) error {
	year, err := parseYearParam(c.Param("year"))
	if err != nil {
		return NewValidationError(c, "Invalid year", []ValidationError{
			{Field: "year", Message: err.Error()},
		})
	}

	role := middleware.GetRole(c)
	months, err := h.metrics.MonthlyData(c.Request().Context(), role, year, bypassCache(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute monthly data")
		return NewInternalError(c, "Failed to compute monthly data")
	}
	return c.JSON(http.StatusOK, map[string]any{"year": year, "months": months})
}

// Apartments handles GET /metrics/apartments
func (h *MetricsHandler) Apartments(c echo.Context) error {
	role := middleware.GetRole(c)
	rows, err := h.metrics.ApartmentProfitability(c.Request().Context(), role, bypassCache(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute apartment profitability")
		return NewInternalError(c, "Failed to compute apartment profitability")
	}
	return c.JSON(http.StatusOK, map[string]any{"apartments": rows})
}

// Sources handles GET /metrics/sources
func (h *MetricsHandler) Sources(c echo.Context) error {
	role := middleware.GetRole(c)
	rows, err := h.metrics.BookingSources(c.Request().Context(), role, bypassCache(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute booking sources")
		return NewInternalError(c, "Failed to compute booking sources")
	}
	return c.JSON(http.StatusOK, map[string]any{"sources": rows})
}

// Comparison handles GET /metrics/comparison
func (h *MetricsHandler) Comparison(c echo.Context) error {
	yearParam := c.QueryParam("year")
	if yearParam == "" {
		return NewValidationError(c, "Missing year", []ValidationError{
			{Field: "year", Message: "year is required"},
		})
	}
	year, err := parseYearParam(yearParam)
	if err != nil {
		return NewValidationError(c, "Invalid year", []ValidationError{
			{Field: "year", Message: err.Error()},
		})
	}

	compareYears, err := parseYearList(c.QueryParam("compare"))
	if err != nil {
		return NewValidationError(c, "Invalid comparison years", []ValidationError{
			{Field: "compare", Message: err.Error()},
		})
	}
	if len(compareYears) == 0 {
		return NewValidationError(c, "Missing comparison years", []ValidationError{
			{Field: "compare", Message: "at least one comparison year is required"},
		})
	}

	role := middleware.GetRole(c)
	comparison, err := h.metrics.CompareYears(c.Request().Context(), role, year, compareYears, bypassCache(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute year comparison")
		return NewInternalError(c, "Failed to compute year comparison")
	}
	return c.JSON(http.StatusOK, comparison)
}

// ApartmentSummary handles GET /apartments/:name/summary
func (h *MetricsHandler) ApartmentSummary(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return NewValidationError(c, "Missing apartment name", []ValidationError{
			{Field: "name", Message: "apartment name is required"},
		})
	}

	role := middleware.GetRole(c)
	summary, err := h.metrics.ApartmentSummary(c.Request().Context(), role, name)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return NewForbiddenError(c, "Apartment not visible to this role")
		}
		if errors.Is(err, domain.ErrApartmentNotFound) {
			return NewNotFoundError(c, "No bookings recorded for this apartment")
		}
		log.Error().Err(err).Str("apartment", name).Msg("Failed to compute apartment summary")
		return NewInternalError(c, "Failed to compute apartment summary")
	}
	return c.JSON(http.StatusOK, summary)
}

// bypassCache reports whether the caller asked for a fresh computation.
func bypassCache(c echo.Context) bool {
	return c.QueryParam("refresh") == "true"
}
