package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "ErrNotFound",
			err:      ErrNotFound,
			expected: true,
		},
		{
			name:     "ErrUserNotFound",
			err:      ErrUserNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrTaskNotFound",
			err:      fmt.Errorf("failed to find task: %w", ErrTaskNotFound),
			expected: true,
		},
		{
			name:     "StoreError wrapping ErrUserNotFound",
			err:      NewStoreError("user", "find_by_id", "lookup failed", ErrUserNotFound),
			expected: true,
		},
		{
			name:     "ErrDuplicate",
			err:      ErrDuplicate,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(fmt.Errorf("%w: users_pkey", ErrDuplicate)))
	assert.False(t, IsDuplicateError(ErrNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestEntitySpecificErrors(t *testing.T) {
	assert.Equal(t, "entity not found: user", ErrUserNotFound.Error())
	assert.Equal(t, "entity not found: task", ErrTaskNotFound.Error())
	assert.False(t, errors.Is(ErrUserNotFound, ErrTaskNotFound))
}

func TestStoreError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewStoreError("task", "save", "failed to save task", cause)

		assert.Equal(t, "save operation on task failed: failed to save task: connection refused", err.Error())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewStoreError("user", "save", "user is nil", nil)

		assert.Equal(t, "save operation on user failed: user is nil", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("errors.As", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", NewStoreError("task", "delete", "boom", nil))

		var se *StoreError
		assert.True(t, errors.As(err, &se))
		assert.Equal(t, "delete", se.Operation)
	})
}
