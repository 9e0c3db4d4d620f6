package mocks

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	CreateTaskFn         func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetTasksByUserFn     func(ctx context.Context, userID string) ([]*domain.Task, error)
	GetTaskByIDAndUserFn func(ctx context.Context, taskID, userID string) (*domain.Task, error)
	UpdateTaskForUserFn  func(ctx context.Context, taskID string, updated *domain.Task) (*domain.Task, error)
	DeleteTaskForUserFn  func(ctx context.Context, taskID, userID string) error

	// Default return values
	Task         *domain.Task
	Tasks        []*domain.Task
	DefaultError error
}

var _ service.TaskService = (*MockTaskService)(nil)

// CreateTask implements the TaskService.CreateTask method
func (m *MockTaskService) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, task)
	}
	return m.Task, m.DefaultError
}

// GetTasksByUser implements the TaskService.GetTasksByUser method
func (m *MockTaskService) GetTasksByUser(ctx context.Context, userID string) ([]*domain.Task, error) {
	if m.GetTasksByUserFn != nil {
		return m.GetTasksByUserFn(ctx, userID)
	}
	return m.Tasks, m.DefaultError
}

// GetTaskByIDAndUser implements the TaskService.GetTaskByIDAndUser method
func (m *MockTaskService) GetTaskByIDAndUser(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	if m.GetTaskByIDAndUserFn != nil {
		return m.GetTaskByIDAndUserFn(ctx, taskID, userID)
	}
	return m.Task, m.DefaultError
}

// UpdateTaskForUser implements the TaskService.UpdateTaskForUser method
func (m *MockTaskService) UpdateTaskForUser(
	ctx context.Context,
	taskID string,
	updated *domain.Task,
) (*domain.Task, error) {
	if m.UpdateTaskForUserFn != nil {
		return m.UpdateTaskForUserFn(ctx, taskID, updated)
	}
	return m.Task, m.DefaultError
}

// DeleteTaskForUser implements the TaskService.DeleteTaskForUser method
func (m *MockTaskService) DeleteTaskForUser(ctx context.Context, taskID, userID string) error {
	if m.DeleteTaskForUserFn != nil {
		return m.DeleteTaskForUserFn(ctx, taskID, userID)
	}
	return m.DefaultError
}
