package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/mongodb"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server and database.
const shutdownTimeout = 10 * time.Second

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger   *slog.Logger
	provider *mongodb.Provider

	// Stores (using interfaces for proper abstraction)
	taskStore store.TaskStore
	userStore store.UserStore

	// Service interfaces
	taskService service.TaskService
	userService service.UserService
}

// newApplication creates a new application instance with all dependencies initialized.
// No connection is opened here; the provider connects on first use.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	return newApplicationWithProvider(cfg, logger, mongodb.NewProvider(mongodb.ProviderConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Name,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		OnConnect:      mongodb.EnsureIndexes,
	}, logger))
}

func newApplicationWithProvider(
	cfg *config.Config,
	logger *slog.Logger,
	provider *mongodb.Provider,
) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		provider: provider,
	}

	// Initialize stores
	app.taskStore = mongodb.NewMongoTaskStore(provider, logger)
	app.userStore = mongodb.NewMongoUserStore(provider, logger)

	// Task lifecycle events feed the audit log
	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewAuditLogHandler(logger))

	var err error
	app.taskService, err = service.NewTaskService(app.taskStore, app.userStore, logger,
		service.WithEventEmitter(emitter))
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.userService, err = service.NewUserService(app.userStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	if cfg.Auth.APIKey == "" {
		logger.Warn("no API key configured; mutating routes are not protected")
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	if !app.config.Server.Serverless {
		app.warmUp(ctx)
	}

	// Set up router using the application dependencies
	router := app.setupRouter()

	// Start the HTTP server
	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// warmUp connects eagerly so the first request does not pay for it.
// A failure is logged; requests retry the connection on demand.
func (app *application) warmUp(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, app.config.Database.ConnectTimeout)
	defer cancel()

	if _, err := app.provider.Acquire(ctx); err != nil {
		app.logger.Warn("initial database connection failed; will retry on demand",
			"error", redact.Error(err))
	}
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup(ctx context.Context) {
	// Close database connection
	if app.provider != nil {
		if err := app.provider.Close(ctx); err != nil {
			app.logger.Error("Error closing database connection", "error", redact.Error(err))
		}
	}
}
