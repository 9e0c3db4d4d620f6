package domain

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var emailValidator = validator.New()

// User represents a registered owner of tasks.
//
// UserID is supplied by the caller at registration; the service never
// generates it. Tasks is a read-time join: it is filled from the task store
// whenever a user is read and is never persisted with the user record.
type User struct {
	UserID   string  `json:"userId"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Tasks    []*Task `json:"tasks"`
}

// Validate checks the user's fields and returns an INVALID_INPUT error with
// one entry per failing field, or nil.
func (u *User) Validate() error {
	var fields []FieldError

	if strings.TrimSpace(u.UserID) == "" {
		fields = append(fields, FieldError{Field: "userId", Message: "Id is required"})
	}
	if strings.TrimSpace(u.Username) == "" {
		fields = append(fields, FieldError{Field: "username", Message: "Username is required"})
	}
	if strings.TrimSpace(u.Email) == "" {
		fields = append(fields, FieldError{Field: "email", Message: "Email is required"})
	} else if !ValidEmail(u.Email) {
		fields = append(fields, FieldError{Field: "email", Message: "Email should be valid"})
	}

	if len(fields) > 0 {
		return NewValidationError(fields...)
	}
	return nil
}

// Stored returns a copy of the user without the transient task list, which is
// the shape stores persist.
func (u *User) Stored() *User {
	return &User{
		UserID:   u.UserID,
		Username: u.Username,
		Email:    u.Email,
	}
}

// ValidEmail reports whether s has the shape of an email address.
func ValidEmail(s string) bool {
	return emailValidator.Var(s, "email") == nil
}
