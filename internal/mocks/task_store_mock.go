package mocks

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockTaskStore is a mock of store.TaskStore interface for use with testify/mock
type TestifyMockTaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*TestifyMockTaskStore)(nil)

// FindByOwner is a mock implementation of store.TaskStore.FindByOwner
func (m *TestifyMockTaskStore) FindByOwner(ctx context.Context, userID string) ([]*domain.Task, error) {
	args := m.Called(ctx, userID)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByIDAndOwner is a mock implementation of store.TaskStore.FindByIDAndOwner
func (m *TestifyMockTaskStore) FindByIDAndOwner(
	ctx context.Context,
	taskID, userID string,
) (*domain.Task, error) {
	args := m.Called(ctx, taskID, userID)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// Save is a mock implementation of store.TaskStore.Save
func (m *TestifyMockTaskStore) Save(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	args := m.Called(ctx, task)
	if saved, ok := args.Get(0).(*domain.Task); ok {
		return saved, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.TaskStore.Delete
func (m *TestifyMockTaskStore) Delete(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}
