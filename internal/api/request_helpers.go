package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// requiredQuery returns the trimmed query parameter, or an INVALID_INPUT
// error carrying message when it is missing or blank.
func requiredQuery(r *http.Request, name, message string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return "", domain.NewValidationError(domain.FieldError{Field: name, Message: message})
	}
	return value, nil
}

// requiredPath returns the chi path parameter, or an INVALID_INPUT error
// carrying message when it is blank.
func requiredPath(r *http.Request, name, message string) (string, error) {
	value := strings.TrimSpace(chi.URLParam(r, name))
	if value == "" {
		return "", domain.NewValidationError(domain.FieldError{Field: name, Message: message})
	}
	return value, nil
}

// decodeAndValidate decodes the JSON body into req and validates its tags.
func decodeAndValidate(r *http.Request, req interface{}) error {
	if err := decodeBody(r, req); err != nil {
		return err
	}
	return shared.ValidateRequest(req)
}

// decodeBody decodes the JSON body into req. Malformed JSON is reported as an
// INVALID_INPUT error.
func decodeBody(r *http.Request, req interface{}) error {
	if err := shared.DecodeJSON(r, req); err != nil {
		return domain.NewValidationError(domain.FieldError{Field: "body", Message: "Malformed request body"})
	}
	return nil
}
