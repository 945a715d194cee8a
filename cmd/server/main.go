package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/histcollect/histcollect/internal/config"
	"github.com/histcollect/histcollect/internal/middleware"
	"github.com/histcollect/histcollect/internal/pkg/logger"
)

const appVersion = "0.1.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Initialize Sentry if enabled
	sentryEnabled := cfg.Sentry.Enabled && cfg.Sentry.DSN != ""
	if sentryEnabled {
		if cfg.Sentry.Environment == "" {
			cfg.Sentry.Environment = cfg.Server.Env
		}
		if err := middleware.InitSentry(cfg.Sentry, "histcollect@"+appVersion); err != nil {
			log.Error("failed to initialize Sentry", zap.Error(err))
			sentryEnabled = false
		} else {
			log.Info("Sentry initialized", zap.String("environment", cfg.Sentry.Environment))
			defer middleware.FlushSentry(5 * time.Second)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	deps, err := initDependencies(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal("failed to initialize dependencies", zap.Error(err))
	}
	defer deps.Close()

	app := newApp(cfg, deps, sentryEnabled)

	// Start server
	go func() {
		addr := cfg.Server.Addr()
		log.Info("starting server", zap.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}

	log.Info("server stopped")
}

// newApp creates the Fiber app with the global middleware chain and routes
func newApp(cfg *config.Config, deps *Dependencies, sentryEnabled bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Histcollect API",
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: cfg.IsProduction(),
		ErrorHandler:          errorHandler(deps.Logger),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.NewLoggerMiddleware(middleware.DefaultLoggerConfig(deps.Logger)).Handler())
	app.Use(middleware.RecoverWithSentry(deps.Logger, sentryEnabled))
	app.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.Server.CORSOrigins...)))
	app.Use(middleware.NewMetricsMiddleware(middleware.DefaultMetricsConfig()).Handler())

	registerRoutes(app, deps)

	return app
}

// errorHandler renders errors no handler answered, such as unmatched routes
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		// Default to 500 Internal Server Error
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("request error",
				zap.Int("status", code),
				zap.Error(err),
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
			middleware.CaptureError(c, err)
		}

		return c.Status(code).JSON(fiber.Map{
			"error":   message,
			"message": message,
		})
	}
}
