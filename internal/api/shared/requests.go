package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// Global validator instance for reuse. Field names in validation errors are
// the JSON names of the request fields.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// FieldMessenger is implemented by request types that supply their own
// client-facing message for each field/tag failure. Keys have the form
// "field.tag", for example "email.required".
type FieldMessenger interface {
	FieldMessages() map[string]string
}

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// ValidateRequest validates v with its struct tags. Failures are returned as
// an INVALID_INPUT domain error with one entry per failing field, in field
// declaration order.
func ValidateRequest(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	var messages map[string]string
	if m, ok := v.(FieldMessenger); ok {
		messages = m.FieldMessages()
	}

	fields := make([]domain.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, domain.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(messages, fe),
		})
	}
	return domain.NewValidationError(fields...)
}

func fieldMessage(messages map[string]string, fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	if fe.Tag() == "required" {
		return fmt.Sprintf("%s is required", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
