package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// ContextKey is the type of request-scoped values set by this package.
type ContextKey string

const (
	// ClaimsContextKey holds the validated *auth.Claims of the caller.
	ClaimsContextKey ContextKey = "claims"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a trace ID
	TraceIDLength = 16 // 32 hex characters
)

// SetTraceID adds a freshly generated trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, generateTraceID())
}

// WithTraceID stores the given trace ID in the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithClaims stores the caller's token claims in the context.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// GetClaims returns the caller's token claims, if the request was authenticated.
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// generateTraceID returns 32 hex characters from crypto/rand, falling back
// to a random UUID without dashes if the system source fails.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	n, err := rand.Read(b)
	if err != nil || n != TraceIDLength {
		slog.Error("failed to generate secure random trace ID",
			"error", err,
			"bytes_read", n,
			"bytes_requested", TraceIDLength,
			"fallback", "uuid")
		id := uuid.New()
		return hex.EncodeToString(id[:])
	}

	return hex.EncodeToString(b)
}
