// Package logger provides structured logging for the application.
//
// It builds JSON loggers on top of log/slog with a configurable level and
// carries request-scoped loggers through context.Context.
package logger
