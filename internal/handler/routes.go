package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
	"github.com/msoliva/atalaya/atalaya-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(
	e *echo.Echo,
	auth *middleware.AuthMiddleware,
	bookingHandler *BookingHandler,
	metricsHandler *MetricsHandler,
	adminHandler *AdminHandler,
	wsHandler *WebSocketHandler,
) {
	// Health check (no auth)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// WebSocket authenticates via query token inside the handler
	e.GET("/ws", wsHandler.Handle)

	api := e.Group("/api/v1", auth.Authenticate())

	bookings := api.Group("/bookings")
	bookings.GET("", bookingHandler.List)
	bookings.GET("/apartments", bookingHandler.Apartments)
	bookings.GET("/years", bookingHandler.Years)
	bookings.GET("/years/:year/months", bookingHandler.Months)

	metrics := api.Group("/metrics")
	metrics.GET("/summary", metricsHandler.Summary)
	metrics.GET("/monthly/:year", metricsHandler.Monthly)
	metrics.GET("/apartments", metricsHandler.Apartments)
	metrics.GET("/sources", metricsHandler.Sources)
	metrics.GET("/comparison", metricsHandler.Comparison)

	api.GET("/apartments/:name/summary", metricsHandler.ApartmentSummary)

	admin := api.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/source", adminHandler.Source)
	admin.POST("/source/toggle", adminHandler.ToggleSource)
	admin.POST("/cache/invalidate", adminHandler.InvalidateCache)
}
