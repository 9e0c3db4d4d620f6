package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
)

// InvalidInputMessage is the top-level error text of a validation failure.
const InvalidInputMessage = "Invalid input"

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Status  int    `json:"-"` // Not serialized to JSON, used for logging
	TraceID string `json:"trace_id,omitempty"`
}

// ValidationErrorResponse lists one message per failing input field.
type ValidationErrorResponse struct {
	Error    string   `json:"error"`
	Code     string   `json:"code,omitempty"`
	Messages []string `json:"messages"`
	TraceID  string   `json:"trace_id,omitempty"`
}

// ResponseOption customizes an error response.
type ResponseOption func(*responseOptions)

type responseOptions struct {
	elevateLogLevel bool
	code            string
}

// WithElevatedLogLevel raises 4xx errors to WARN level instead of DEBUG.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// WithCode sets the machine-readable code of the error body.
func WithCode(code string) ResponseOption {
	return func(opts *responseOptions) {
		opts.code = code
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status code and message.
// It also sets the TraceID from the request context if available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string, opts ...ResponseOption) {
	responseOpts := applyOptions(opts)
	traceID := GetTraceID(r.Context())

	logger.FromContext(r.Context()).Debug("sending error response",
		"status_code", status,
		"message", message,
		"code", responseOpts.code,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   message,
		Code:    responseOpts.code,
		Status:  status,
		TraceID: traceID,
	})
}

// RespondWithValidationErrors writes a 400 response carrying the per-field messages.
func RespondWithValidationErrors(w http.ResponseWriter, r *http.Request, code string, messages []string) {
	if messages == nil {
		messages = []string{}
	}

	logger.FromContext(r.Context()).Debug("request validation failed",
		"path", r.URL.Path,
		"method", r.Method,
		"messages", messages)

	RespondWithJSON(w, r, http.StatusBadRequest, ValidationErrorResponse{
		Error:    InvalidInputMessage,
		Code:     code,
		Messages: messages,
		TraceID:  GetTraceID(r.Context()),
	})
}

// RespondWithErrorAndLog writes a JSON error response and logs the redacted
// detailed error. Only userMessage reaches the client.
//
// 5xx responses are logged at ERROR, 429 and elevated 4xx at WARN,
// everything else at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
	opts ...ResponseOption,
) {
	responseOpts := applyOptions(opts)
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if responseOpts.code != "" {
		logAttrs = append(logAttrs, slog.String("code", responseOpts.code))
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		logLevel = slog.LevelError
	case status == http.StatusTooManyRequests:
		logLevel = slog.LevelWarn
	case responseOpts.elevateLogLevel && status >= http.StatusBadRequest:
		logLevel = slog.LevelWarn
	}

	logger.FromContext(r.Context()).LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   userMessage,
		Code:    responseOpts.code,
		Status:  status,
		TraceID: traceID,
	})
}

func applyOptions(opts []ResponseOption) responseOptions {
	var o responseOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
