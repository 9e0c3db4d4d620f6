package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind identifies a business failure. Its string value is the stable,
// machine-readable code exposed to API clients.
type ErrorKind string

// The closed set of error kinds.
const (
	KindUserNotFound ErrorKind = "USER_NOT_FOUND"
	KindUserExists   ErrorKind = "USER_EXISTS"
	KindTaskNotFound ErrorKind = "TASK_NOT_FOUND"
	KindInvalidInput ErrorKind = "INVALID_INPUT"
)

// Code returns the machine-readable code for the kind.
func (k ErrorKind) Code() string {
	return string(k)
}

// DefaultMessage returns the human message used when an Error carries no
// contextual message of its own.
func (k ErrorKind) DefaultMessage() string {
	switch k {
	case KindUserNotFound:
		return "user not found"
	case KindUserExists:
		return "user already exists"
	case KindTaskNotFound:
		return "task not found"
	case KindInvalidInput:
		return "invalid input"
	default:
		return "unknown error"
	}
}

// Valid reports whether k is one of the known kinds.
func (k ErrorKind) Valid() bool {
	switch k {
	case KindUserNotFound, KindUserExists, KindTaskNotFound, KindInvalidInput:
		return true
	default:
		return false
	}
}

// Sentinels for use with errors.Is. Matching compares kinds only, so any
// *Error of the same kind matches regardless of its message.
var (
	ErrUserNotFound = &Error{Kind: KindUserNotFound}
	ErrUserExists   = &Error{Kind: KindUserExists}
	ErrTaskNotFound = &Error{Kind: KindTaskNotFound}
	ErrInvalidInput = &Error{Kind: KindInvalidInput}
)

// FieldError describes a single failing input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a typed business failure. Callers switch on Kind rather than on
// the Go type of the error.
type Error struct {
	Kind ErrorKind
	// Message overrides the kind's default message when set.
	Message string
	// Fields lists per-field failures for KindInvalidInput.
	Fields []FieldError
	// Err is an optional underlying cause.
	Err error
}

// NewError creates an Error of the given kind with a contextual message.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Errorf creates an Error of the given kind with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewValidationError creates an INVALID_INPUT error carrying one entry per
// failing field.
func NewValidationError(fields ...FieldError) *Error {
	return &Error{Kind: KindInvalidInput, Fields: fields}
}

// Code returns the stable code of the error's kind.
func (e *Error) Code() string {
	return e.Kind.Code()
}

// Msg returns the contextual message, falling back to the kind's default.
func (e *Error) Msg() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.DefaultMessage()
}

// FieldMessages returns the per-field messages in order.
func (e *Error) FieldMessages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return msgs
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Code())
	b.WriteString(": ")
	b.WriteString(e.Msg())
	if len(e.Fields) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(e.FieldMessages(), "; "))
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the wrapped cause to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf extracts the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
