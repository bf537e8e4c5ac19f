package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/planner/internal/config"
	"github.com/phrazzld/planner/internal/events"
	"github.com/phrazzld/planner/internal/platform/memory"
	"github.com/phrazzld/planner/internal/platform/postgres"
	"github.com/phrazzld/planner/internal/platform/redis"
	"github.com/phrazzld/planner/internal/service"
	"github.com/phrazzld/planner/internal/service/auth"
	"github.com/phrazzld/planner/internal/store"
)

// application holds the shared dependencies of the server and releases them
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil on the memory backend.
	db      *sql.DB
	backend store.Backend

	// jwtService is nil when authentication is disabled.
	jwtService auth.JWTService

	eventEmitter *events.InMemoryEventEmitter
	// eventBus is nil unless events.redis_url is set.
	eventBus *redis.EventPublisher

	subjectService  service.SubjectService
	semesterService service.SemesterService
	examService     service.ExamService
	progressService service.ProgressService
}

// newApplication wires storage, events and services from cfg.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if err := app.setupStorage(ctx); err != nil {
		return nil, err
	}

	if cfg.Auth.AuthEnabled() {
		jwtService, err := auth.NewJWTService(cfg.Auth)
		if err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		app.jwtService = jwtService
		logger.Info("JWT authentication enabled",
			"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)
	} else {
		logger.Warn("JWT authentication disabled: auth.jwt_secret is empty")
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewAuditLogHandler(logger))

	if cfg.Events.RedisURL != "" {
		bus, err := redis.Dial(ctx, cfg.Events.RedisURL, cfg.Events.ChannelPrefix, logger)
		if err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to connect event bus: %w", err)
		}
		app.eventBus = bus
		app.eventEmitter.RegisterHandler(bus)
		logger.Info("Publishing plan events to redis", "channel_prefix", cfg.Events.ChannelPrefix)
	}

	if err := app.setupServices(); err != nil {
		app.cleanup()
		return nil, err
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupStorage opens the configured backend.
func (app *application) setupStorage(ctx context.Context) error {
	switch app.config.Storage.Backend {
	case config.BackendPostgres:
		db, err := postgres.Open(ctx, app.config.Database.URL)
		if err != nil {
			return err
		}
		backend, err := postgres.NewBackend(db, app.logger)
		if err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to create postgres backend: %w", err)
		}
		app.db = db
		app.backend = backend
		app.logger.Info("Database connection established")
	default:
		app.backend = memory.NewBackend(app.logger)
		app.logger.Info("Using in-memory storage; the plan is lost on restart")
	}
	return nil
}

func (app *application) setupServices() error {
	var err error

	app.subjectService, err = service.NewSubjectService(app.backend, app.eventEmitter, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create subject service: %w", err)
	}

	app.semesterService, err = service.NewSemesterService(app.backend, app.eventEmitter, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create semester service: %w", err)
	}

	app.examService, err = service.NewExamService(app.backend, app.eventEmitter, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create exam service: %w", err)
	}

	app.progressService, err = service.NewProgressService(app.backend.Stores().Subjects, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create progress service: %w", err)
	}

	return nil
}

// Run serves the API until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the database and event bus connections.
func (app *application) cleanup() {
	if app.eventBus != nil {
		if err := app.eventBus.Close(); err != nil {
			app.logger.Error("Error closing event bus connection", "error", err)
		}
		app.eventBus = nil
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
		app.db = nil
	}

	app.logger.Info("Application shutdown completed")
}
