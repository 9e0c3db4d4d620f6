package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apiMiddleware "github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/memory"
	"github.com/phrazzld/tasks-api/internal/platform/mongodb"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// appOptions holds command-line switches that affect initialization.
type appOptions struct {
	migrate bool
}

// application holds the shared dependencies of the server and the cleanup
// functions of the resources it opened.
type application struct {
	config *config.Config
	logger *slog.Logger

	userStore store.UserStore
	taskStore store.TaskStore

	userService service.UserService
	taskService service.TaskService
	jwtService  auth.JWTService

	registry *prometheus.Registry
	metrics  *apiMiddleware.Metrics

	closers []func(context.Context) error
}

// newApplication builds the application for cfg. Stores are chosen by
// cfg.Store.Driver; services receive them through their constructors.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts appOptions) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"issuer_checked", cfg.Auth.Issuer != "",
		"audience_checked", cfg.Auth.Audience != "")

	if err := app.openStores(ctx, opts); err != nil {
		app.cleanup()
		return nil, err
	}

	app.userService = service.NewUserService(app.userStore, app.taskStore, logger)
	app.taskService = service.NewTaskService(app.taskStore, logger)

	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics, err = apiMiddleware.NewMetrics(app.registry)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	return app, nil
}

// openStores connects the configured backend and creates both stores.
func (app *application) openStores(ctx context.Context, opts appOptions) error {
	cfg := app.config

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.Database.URL, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
		if err != nil {
			return fmt.Errorf("failed to open postgres: %w", err)
		}
		app.closers = append(app.closers, func(context.Context) error { return db.Close() })

		if opts.migrate {
			version, err := postgres.Migrate(ctx, db, postgres.MigrateUp, app.logger)
			if err != nil {
				return fmt.Errorf("failed to apply migrations: %w", err)
			}
			app.logger.Info("database migrations applied", "version", version)
		}

		app.userStore = postgres.NewPostgresUserStore(db, app.logger)
		app.taskStore = postgres.NewPostgresTaskStore(db, app.logger)

	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			return err
		}
		app.closers = append(app.closers, client.Disconnect)

		db := client.Database(cfg.Mongo.Database)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return err
		}

		app.userStore = mongodb.NewUserStore(db, app.logger)
		app.taskStore = mongodb.NewTaskStore(db, app.logger)

	case config.DriverMemory:
		app.logger.Warn("using in-memory store; data is lost on restart")
		app.userStore = memory.NewUserStore()
		app.taskStore = memory.NewTaskStore()

	default:
		return fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}

	app.logger.Info("stores initialized", "driver", cfg.Store.Driver)
	return nil
}

// cleanup releases opened resources in reverse order.
func (app *application) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](ctx); err != nil {
			app.logger.Error("failed to release resource", "error", redact.Error(err))
		}
	}
	app.closers = nil
}
