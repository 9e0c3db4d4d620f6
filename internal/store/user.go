package store

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// UserStore defines the port for user persistence.
//
// Lookups never return a nil user with a nil error: absence is reported as
// ErrUserNotFound. Returned users never carry a task list.
type UserStore interface {
	// FindByID retrieves a user by its caller-supplied id.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByUsername retrieves a user by username.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByEmail retrieves a user by email address.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// Save inserts or replaces the user keyed by UserID and returns the
	// persisted record. The transient task list is never stored.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
}
