package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
)

// MigrationTableName is the goose version table.
const MigrationTableName = "schema_migrations"

//go:embed migrations/*.sql
var migrationFS embed.FS

const migrationsDir = "migrations"

// Migration commands accepted by Migrate.
const (
	MigrateUp      = "up"
	MigrateDown    = "down"
	MigrateStatus  = "status"
	MigrateVersion = "version"
)

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress messages at info level.
func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level. It does not exit; goose returns the error to
// the caller as well.
func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// Migrate runs a goose command against db using the embedded migration set.
// For MigrateVersion it returns the current schema version.
func Migrate(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) (int64, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "migrations", "command", command)

	goose.SetBaseFS(migrationFS)
	goose.SetLogger(&slogGooseLogger{logger: log})
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return 0, fmt.Errorf("failed to set dialect: %w", err)
	}

	start := time.Now()
	var err error
	switch command {
	case MigrateUp:
		err = goose.UpContext(ctx, db, migrationsDir)
	case MigrateDown:
		err = goose.DownContext(ctx, db, migrationsDir)
	case MigrateStatus:
		err = goose.StatusContext(ctx, db, migrationsDir)
	case MigrateVersion:
		// reported below
	default:
		return 0, fmt.Errorf(
			"unknown migration command: %s (expected up, down, status, or version)",
			command,
		)
	}
	if err != nil {
		log.Error("migration command failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return 0, fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}

	log.Info("migration command completed",
		"version", version,
		"duration_ms", time.Since(start).Milliseconds())
	return version, nil
}
