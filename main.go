package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/viper"

	"vethome/internal/config"
	"vethome/internal/controller"
	"vethome/internal/database"
	"vethome/internal/handlers"
	"vethome/internal/logger"
	"vethome/internal/middleware"
	"vethome/internal/preferences"
	"vethome/internal/repositories"
	"vethome/internal/services"
	"vethome/pkg/rabbitmq"
)

// App bundles the wired components and the resources to release on shutdown.
type App struct {
	Fiber      *fiber.App
	Controller *controller.Controller
	Records    *services.RecordStore
	Prefs      *preferences.Store

	closers []func() error
	log     *logger.Logger
}

// NewApp opens the stores, seeds demo data when asked and mounts the routes.
func NewApp(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	a := &App{log: log}

	// --- Relational store ---
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() error { return database.Close(db) })

	// --- Event publisher (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log.Component("rabbitmq"))
		if err != nil {
			// Events are best-effort; run without them.
			log.WithError(err).Warn("RabbitMQ unavailable, events disabled")
		} else {
			publisher = mqClient
			a.closers = append(a.closers, mqClient.Close)
		}
	}

	// --- Repositories and services ---
	a.Records = services.NewRecordStore(
		repositories.NewGORMClientRepository(db),
		repositories.NewGORMPetRepository(db),
		repositories.NewGORMAppointmentRepository(db),
		publisher,
		log,
	)
	if cfg.SeedDemo {
		if err := a.Records.SeedDemoData(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	// --- Preference store ---
	var backend preferences.Backend
	switch cfg.PrefsBackend {
	case "redis":
		rb, err := preferences.NewRedisBackend(ctx, preferences.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			a.Close()
			return nil, err
		}
		backend = rb
		a.closers = append(a.closers, rb.Close)
	default:
		backend = preferences.NewGORMBackend(repositories.NewGORMPreferenceRepository(db))
	}
	a.Prefs = preferences.NewStore(backend, log)
	if err := a.Prefs.Refresh(ctx); err != nil {
		log.WithError(err).Warn("failed to read preferences")
	}

	// --- Controller ---
	a.Controller = controller.New(a.Records, a.Prefs, log)

	// --- Fiber app ---
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{Output: log.Writer()}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": publisher != nil,
		})
	})

	apiV1 := app.Group("/api/v1")
	handlers.NewSessionHandler(a.Controller).RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.SessionRequired(a.Controller))
	handlers.NewPetHandler(a.Controller).RegisterRoutes(protected)
	handlers.NewAppointmentHandler(a.Controller).RegisterRoutes(protected)

	a.Fiber = app
	return a, nil
}

// Close stops the controller and releases resources in reverse order.
func (a *App) Close() {
	if a.Controller != nil {
		a.Controller.Close()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.WithError(err).Warn("error during shutdown")
		}
	}
	a.closers = nil
}

func main() {
	// --- Configuration ---
	cfg, err := config.Load(viper.New())
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	app, err := NewApp(context.Background(), cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to start")
	}

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.WithField("port", cfg.AppPort).Info("starting server")
		if err := app.Fiber.Listen(cfg.AppPort); err != nil {
			log.WithError(err).Fatal("server failed to start")
		}
	}()

	<-quit
	log.Info("shutting down server")

	if err := app.Fiber.Shutdown(); err != nil {
		log.WithError(err).Warn("error during Fiber shutdown")
	}
	app.Close()
	log.Info("server gracefully stopped")
}
