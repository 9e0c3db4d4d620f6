// Package main implements the tasks-api server: a REST API for users and
// the tasks they own, gated by OAuth2 bearer token scopes.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "tasks-api",
		Short:         "REST API for users and their tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand(), newMigrateCommand())
	return root
}

func newServeCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := newApplication(ctx, cfg, log, appOptions{migrate: migrate})
			if err != nil {
				return fmt.Errorf("failed to initialize application: %s", redact.Error(err))
			}
			defer app.cleanup()

			return app.startHTTPServer(ctx, app.setupRouter())
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving (postgres driver only)")
	return cmd
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [up|down|status|version]",
		Short: "Run database migrations against database.url",
		ValidArgs: []string{
			postgres.MigrateUp,
			postgres.MigrateDown,
			postgres.MigrateStatus,
			postgres.MigrateVersion,
		},
		Args: cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			return runMigrations(cmd.Context(), cfg, args[0], log)
		},
	}
}

// loadConfig loads configuration and sets up the default logger.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"store_driver", cfg.Store.Driver)
	return cfg, log, nil
}

// runMigrations opens database.url and runs one goose command.
func runMigrations(ctx context.Context, cfg *config.Config, command string, log *slog.Logger) error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("migrate requires database.url")
	}

	db, err := postgres.Open(ctx, cfg.Database.URL, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		return fmt.Errorf("failed to open database: %s", redact.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", "error", redact.Error(err))
		}
	}()

	version, err := postgres.Migrate(ctx, db, command, log)
	if err != nil {
		return fmt.Errorf("migrate %s failed: %s", command, redact.Error(err))
	}

	log.Info("migration command completed", "command", command, "version", version)
	return nil
}
