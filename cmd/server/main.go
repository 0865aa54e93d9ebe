package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/authz"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/config"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/database"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/logging"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/notify"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/repository"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/routes"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if !cfg.UsesSQLite() && cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database: opened lazily, warmed up here so migrations run before traffic.
	db := database.New(cfg)
	if _, err := db.Get(); err != nil {
		slog.Warn("database not reachable at startup, will retry on demand", "error", err)
	}

	// Database log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(db, 5*time.Second)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewJSONHandler(os.Stdout, cfg.LogLevel),
		dbLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetention, cleanupDone)

	// Admin notifications
	notifier, closeNotifier := notify.FromConfig(cfg)

	// Services
	repo := repository.New(db)
	authService := services.NewAuthService(repo, cfg)
	providerService := services.NewProviderService(repo, notifier)
	catalogService := services.NewCatalogService(repo)
	reviewService := services.NewReviewService(repo)
	contactService := services.NewContactService(repo)

	// Handlers
	h := routes.Handlers{
		Health:   handlers.NewHealthHandler(db),
		Auth:     handlers.NewAuthHandler(authService),
		Provider: handlers.NewProviderHandler(providerService),
		Catalog:  handlers.NewCatalogHandler(catalogService),
		Activity: handlers.NewActivityHandler(reviewService, contactService),
		Admin:    handlers.NewAdminHandler(providerService, catalogService),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
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
	app.Use(middleware.SecurityHeaders())

	// Routes
	routes.Setup(app, cfg, authz.NewGate(repo), authService, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "db_driver", cfg.DBDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := closeNotifier(); err != nil {
		slog.Warn("notifier close error", "error", err)
	}
	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := db.Close(); err != nil {
		slog.Warn("database close error", "error", err)
	}

	slog.Info("server stopped")
}
