package store

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskStore defines the port for task persistence. Every single-task lookup
// is scoped by owner.
type TaskStore interface {
	// FindByOwner returns all tasks owned by userID. An owner with no tasks
	// yields an empty slice and a nil error.
	FindByOwner(ctx context.Context, userID string) ([]*domain.Task, error)

	// FindByIDAndOwner retrieves the task only if it exists and belongs to
	// userID. Both cases of mismatch return ErrTaskNotFound.
	FindByIDAndOwner(ctx context.Context, taskID, userID string) (*domain.Task, error)

	// Save inserts or replaces the task keyed by TaskID and returns the
	// persisted record.
	Save(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// Delete removes exactly the given stored task. Implementations match on
	// both TaskID and UserID.
	Delete(ctx context.Context, task *domain.Task) error
}
