package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/tasks-api/internal/config"
)

// ParseLevel maps a configured level name (case-insensitive) to a slog.Level.
// The second return value is false for unknown names, in which case
// slog.LevelInfo is returned.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New creates a JSON logger writing to out at the given level.
func New(out io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}

// Setup initializes the application's logging system from the server
// configuration. It creates a structured JSON logger on stdout, installs it as
// the slog default and returns it.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	return setup(os.Stdout, cfg.LogLevel), nil
}

func setup(out io.Writer, levelName string) *slog.Logger {
	level, ok := ParseLevel(levelName)
	l := New(out, level)
	if !ok {
		l.Warn("invalid log level configured, using default level",
			"configured_level", levelName,
			"default_level", "info")
	}

	slog.SetDefault(l)
	return l
}
