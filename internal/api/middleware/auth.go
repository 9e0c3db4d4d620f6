package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// AuthMiddleware provides bearer token authentication and scope checks.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the bearer token from the Authorization header and
// stores its claims in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				logger.FromContext(r.Context()).Error("failed to validate token", "error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		ctx := shared.WithClaims(r.Context(), claims)
		ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With("subject", claims.Subject))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireScope rejects requests whose token was not granted scope. It must be
// mounted after Authenticate.
func (m *AuthMiddleware) RequireScope(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := shared.GetClaims(r.Context())
			if !ok {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
				return
			}
			if !claims.HasScope(scope) {
				logger.FromContext(r.Context()).Warn("token lacks required scope",
					"required_scope", scope,
					"granted_scopes", claims.Scopes)
				shared.RespondWithError(w, r, http.StatusForbidden, "Insufficient scope")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
