package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/msoliva/atalaya/atalaya-backend/internal/cache"
	"github.com/msoliva/atalaya/atalaya-backend/internal/config"
	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
	"github.com/msoliva/atalaya/atalaya-backend/internal/handler"
	"github.com/msoliva/atalaya/atalaya-backend/internal/middleware"
	"github.com/msoliva/atalaya/atalaya-backend/internal/repository/airtable"
	"github.com/msoliva/atalaya/atalaya-backend/internal/repository/postgres"
	"github.com/msoliva/atalaya/atalaya-backend/internal/service"
	"github.com/msoliva/atalaya/atalaya-backend/internal/websocket"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize repositories. Both sources are optional at startup; the
	// router requires at least the configured one.
	var airtableRepo domain.BookingRepository
	if cfg.Airtable.APIKey != "" && cfg.Airtable.BaseID != "" {
		airtableRepo = airtable.NewBookingRepository(cfg.Airtable.APIKey, cfg.Airtable.BaseID, cfg.Airtable.TableName)
		log.Info().Str("table", cfg.Airtable.TableName).Msg("Airtable source configured")
	}

	var postgresRepo domain.BookingRepository
	if cfg.DatabaseURL != "" {
		pool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer pool.Close()

		if err := pool.Ping(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("Failed to ping database")
		}
		log.Info().Msg("Connected to database")

		postgresRepo = postgres.NewBookingRepository(pool)
	}

	router, err := service.NewDataRouter(airtableRepo, postgresRepo, cfg.DataSource)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.DataSource).Msg("Failed to initialize data router")
	}
	log.Info().Str("source", router.CurrentName()).Msg("Active booking data source")

	// Initialize WebSocket hub and metrics cache
	hub := websocket.NewHub()
	metricsCache := cache.New(cfg.CacheTTL)

	// Initialize services
	bookingService := service.NewBookingService(router, cfg.UserApartments)
	metricsService := service.NewMetricsService(bookingService, metricsCache, hub)

	// Initialize auth middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}

	// Initialize handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	metricsHandler := handler.NewMetricsHandler(metricsService)
	adminHandler := handler.NewAdminHandler(metricsService, router)
	wsHandler := handler.NewWebSocketHandler(hub, authMiddleware, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Rate limiting middleware
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()
	e.Use(rateLimiter.Middleware())

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, bookingHandler, metricsHandler, adminHandler, wsHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
