package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/homedash/homedash-backend/internal/catalog"
	"github.com/homedash/homedash-backend/internal/config"
	"github.com/homedash/homedash-backend/internal/database"
	"github.com/homedash/homedash-backend/internal/handlers"
	"github.com/homedash/homedash-backend/internal/logging"
	"github.com/homedash/homedash-backend/internal/middleware"
	"github.com/homedash/homedash-backend/internal/providers"
	"github.com/homedash/homedash-backend/internal/routes"
	"github.com/homedash/homedash-backend/internal/storage"
	"github.com/homedash/homedash-backend/internal/stores"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if !cfg.DemoMode && cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required (or set DEMO_MODE=true)")
		os.Exit(1)
	}

	// Widget/service catalog
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		slog.Error("failed to load catalog", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}
	slog.Info("catalog loaded", "widgets", len(cat.Widgets()), "services", len(cat.Services()))

	var (
		snapshots   storage.Snapshots
		identity    providers.Identity
		db          providers.Database
		mode        string
		ping        func() error
		dbLog       *logging.DBHandler
		cleanupDone chan struct{}
	)

	if cfg.DemoMode {
		mode = "demo"
		snapshots = storage.NewMemorySnapshots()
		identity = providers.NewMemoryIdentity(cfg.ProviderDelay, cfg.SessionExpiry)
		db = providers.NewMemoryDatabase()
		slog.Info("running in demo mode; state is not durable")
	} else {
		mode = "database"
		if err := database.Connect(cfg); err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		if err := database.Migrate(); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}

		// Database log handler (ERROR+ async batch)
		dbLog = logging.NewDBHandler(database.DB)
		slog.SetDefault(slog.New(logging.NewMultiHandler(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
			dbLog,
		)))

		// Log cleanup (30-day retention)
		cleanupDone = make(chan struct{})
		logging.StartCleanup(database.DB, cleanupDone)

		snapshots = storage.NewGormSnapshots(database.DB)
		identity = providers.NewGormIdentity(database.DB, cfg.SessionExpiry)
		db = providers.NewGormDatabase(database.DB)
		ping = database.Ping
	}

	content := providers.NewMockContent(cfg.ProviderDelay)

	// Stores
	servicesStore := stores.NewServicesStore(snapshots, db, cat)
	dashboardStore := stores.NewDashboardStore(snapshots, cat, servicesStore)
	authStore := stores.NewAuthStore(snapshots, identity, db, cfg)

	// Startup session check: an expired persisted session drops to anonymous.
	if err := authStore.LoadUser(context.Background()); err != nil {
		slog.Warn("startup session check failed", "error", err)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authStore)
	dashboardHandler := handlers.NewDashboardHandler(dashboardStore)
	servicesHandler := handlers.NewServicesHandler(servicesStore)
	feedHandler := handlers.NewFeedHandler(content)
	catalogHandler := handlers.NewCatalogHandler(cat)
	healthHandler := handlers.NewHealthHandler(mode, ping)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, authHandler, dashboardHandler, servicesHandler, feedHandler, catalogHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "mode", mode)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if cleanupDone != nil {
		close(cleanupDone)
	}
	if dbLog != nil {
		dbLog.Stop()
	}
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if database.DB != nil {
		if sqlDB, err := database.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("database close error", "error", err)
			}
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
