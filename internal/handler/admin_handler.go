package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
	"github.com/msoliva/atalaya/atalaya-backend/internal/service"
)

// AdminHandler handles the admin-only operational endpoints
type AdminHandler struct {
	metrics *service.MetricsService
	router  *service.DataRouter
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(metrics *service.MetricsService, router *service.DataRouter) *AdminHandler {
	return &AdminHandler{metrics: metrics, router: router}
}

// Source handles GET /admin/source
func (h *AdminHandler) Source(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"source": h.router.CurrentName(),
	})
}

// ToggleSource handles POST /admin/source/toggle
func (h *AdminHandler) ToggleSource(c echo.Context) error {
	name, err := h.metrics.SwitchDataSource(h.router)
	if err != nil {
		if errors.Is(err, domain.ErrSourceUnavailable) {
			return NewConflictError(c, "The other data source is not configured")
		}
		log.Error().Err(err).Msg("Failed to switch data source")
		return NewInternalError(c, "Failed to switch data source")
	}

	log.Info().Str("source", name).Msg("Data source switched")
	return c.JSON(http.StatusOK, map[string]any{
		"source": name,
	})
}

// InvalidateCache handles POST /admin/cache/invalidate
func (h *AdminHandler) InvalidateCache(c echo.Context) error {
	prefix := c.QueryParam("prefix")
	dropped := h.metrics.InvalidatePrefix(prefix)
	return c.JSON(http.StatusOK, map[string]any{
		"prefix":  prefix,
		"dropped": dropped,
	})
}
