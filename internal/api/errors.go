package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

const unexpectedErrorMessage = "An unexpected error occurred"

// MapErrorToStatusCode maps an error to its HTTP status. Domain errors are
// mapped by kind; anything unrecognized is a 500.
func MapErrorToStatusCode(err error) int {
	if kind, ok := domain.KindOf(err); ok {
		switch kind {
		case domain.KindUserNotFound, domain.KindTaskNotFound:
			return http.StatusNotFound
		case domain.KindUserExists:
			return http.StatusConflict
		case domain.KindInvalidInput:
			return http.StatusBadRequest
		}
	}

	switch {
	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized

	case errors.Is(err, auth.ErrInsufficientScope):
		return http.StatusForbidden

	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err. Domain errors
// carry messages written for clients; everything else gets a fixed message
// so internal details never leave the process.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return unexpectedErrorMessage
	}

	var de *domain.Error
	if errors.As(err, &de) {
		if de.Kind == domain.KindInvalidInput {
			return shared.InvalidInputMessage
		}
		return de.Msg()
	}

	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization header required"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"
	case errors.Is(err, auth.ErrInsufficientScope):
		return "Insufficient scope"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	default:
		return unexpectedErrorMessage
	}
}

// HandleAPIError writes the response for err. Validation failures become a
// 400 listing each field message; other errors get the mapped status and a
// safe message, with the redacted cause logged.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		if de.Kind == domain.KindInvalidInput {
			shared.RespondWithValidationErrors(w, r, de.Code(), de.FieldMessages())
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), de.Msg(), err,
			shared.WithCode(de.Code()))
		return
	}

	status := MapErrorToStatusCode(err)
	opts := []shared.ResponseOption{}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}
