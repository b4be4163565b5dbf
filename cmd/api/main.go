package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nisarga403/Family-FinanceFlow/internal/ai"
	"github.com/Nisarga403/Family-FinanceFlow/internal/config"
	"github.com/Nisarga403/Family-FinanceFlow/internal/handler"
	"github.com/Nisarga403/Family-FinanceFlow/internal/middleware"
	"github.com/Nisarga403/Family-FinanceFlow/internal/repository/postgres"
	"github.com/Nisarga403/Family-FinanceFlow/internal/repository/storage"
	"github.com/Nisarga403/Family-FinanceFlow/internal/service"
	"github.com/Nisarga403/Family-FinanceFlow/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
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

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	snapshotRepo := postgres.NewSnapshotRepository(pool)
	if err := snapshotRepo.EnsureSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure database schema")
	}

	// Initialize AI generator
	generator, err := ai.NewGemini(context.Background(), cfg.Gemini)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	// Object storage is optional; without it generated media is returned by
	// reference only
	var media storage.MediaRepository
	if cfg.S3.AccessKeyID != "" {
		s3Media, err := storage.NewS3MediaRepository(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 media repository")
		}
		media = s3Media
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Object storage configured")
	} else {
		log.Warn().Msg("No object storage configured, generated media will not be persisted")
	}

	// Initialize services
	authService := service.NewAuthService(userRepo)
	sessionService := service.NewSessionService(snapshotRepo, cfg.AutosaveDelay)
	insightService := service.NewInsightService(generator, media)

	// Initialize auth middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience, authService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}

	// Rate limiter for the AI routes
	aiRateLimiter := middleware.NewRateLimiter()

	// Initialize WebSocket hub and its token validator
	hub := websocket.NewHub()
	wsValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience, authService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create WebSocket JWT validator")
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, sessionService)
	dataHandler := handler.NewDataHandler(sessionService, hub)
	transactionHandler := handler.NewTransactionHandler(sessionService, hub)
	budgetHandler := handler.NewBudgetHandler(sessionService, hub)
	familyHandler := handler.NewFamilyMemberHandler(sessionService, hub)
	goalHandler := handler.NewGoalHandler(sessionService, hub)
	recurringHandler := handler.NewRecurringPaymentHandler(sessionService, hub)
	dashboardHandler := handler.NewDashboardHandler(sessionService)
	aiHandler := handler.NewAIHandler(sessionService, insightService)
	wsHandler := handler.NewWebSocketHandler(hub, wsValidator, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
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

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, aiRateLimiter, authHandler, dataHandler, transactionHandler, budgetHandler, familyHandler, goalHandler, recurringHandler, dashboardHandler, aiHandler, wsHandler)

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
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Flush any pending snapshot saves before the pool closes
	sessionService.Close()
	aiRateLimiter.Stop()

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
