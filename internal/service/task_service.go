package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskService provides task operations. Every read, update and delete is
// scoped by the owning user's id.
type TaskService interface {
	// CreateTask stores the task, generating a TaskID when it is blank.
	CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// GetTasksByUser returns the user's tasks. An empty result is reported
	// as USER_NOT_FOUND.
	GetTasksByUser(ctx context.Context, userID string) ([]*domain.Task, error)

	// GetTaskByIDAndUser returns the task only if userID owns it.
	GetTaskByIDAndUser(ctx context.Context, taskID, userID string) (*domain.Task, error)

	// UpdateTaskForUser replaces the mutable fields of the task owned by
	// updated.UserID. TaskID and UserID of the stored task never change.
	UpdateTaskForUser(ctx context.Context, taskID string, updated *domain.Task) (*domain.Task, error)

	// DeleteTaskForUser removes the task owned by userID.
	DeleteTaskForUser(ctx context.Context, taskID, userID string) error
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With("component", "task_service"),
	}
}

func taskNotFound(taskID, userID string) *domain.Error {
	return domain.Errorf(domain.KindTaskNotFound, "Task with ID %s not found for user %s.", taskID, userID)
}

// CreateTask implements TaskService.CreateTask
func (s *TaskServiceImpl) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	toSave := task.Clone()
	if strings.TrimSpace(toSave.TaskID) == "" {
		toSave.TaskID = uuid.NewString()
	}

	saved, err := s.taskStore.Save(ctx, toSave)
	if err != nil {
		log.Error("failed to save task",
			"error", err,
			"task_id", toSave.TaskID,
			"user_id", toSave.UserID)
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created successfully",
		"task_id", saved.TaskID,
		"user_id", saved.UserID)
	return saved, nil
}

// GetTasksByUser implements TaskService.GetTasksByUser
func (s *TaskServiceImpl) GetTasksByUser(ctx context.Context, userID string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.taskStore.FindByOwner(ctx, userID)
	if err != nil {
		log.Error("failed to retrieve tasks for user",
			"error", err,
			"user_id", userID)
		return nil, NewTaskServiceError("get_tasks_by_user", "failed to retrieve tasks", err)
	}

	if len(tasks) == 0 {
		log.Debug("no tasks found for user", "user_id", userID)
		return nil, domain.Errorf(domain.KindUserNotFound, "No tasks found for user with ID %s.", userID)
	}

	return tasks, nil
}

// GetTaskByIDAndUser implements TaskService.GetTaskByIDAndUser
func (s *TaskServiceImpl) GetTaskByIDAndUser(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	return s.find(ctx, "get_task_by_id_and_user", taskID, userID)
}

// UpdateTaskForUser implements TaskService.UpdateTaskForUser
func (s *TaskServiceImpl) UpdateTaskForUser(
	ctx context.Context,
	taskID string,
	updated *domain.Task,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.find(ctx, "update_task_for_user", taskID, updated.UserID)
	if err != nil {
		return nil, err
	}

	saved, err := s.taskStore.Save(ctx, existing.Replaced(updated))
	if err != nil {
		log.Error("failed to save updated task",
			"error", err,
			"task_id", taskID,
			"user_id", existing.UserID)
		return nil, NewTaskServiceError("update_task_for_user", "failed to save task", err)
	}

	log.Info("task updated successfully",
		"task_id", saved.TaskID,
		"user_id", saved.UserID)
	return saved, nil
}

// DeleteTaskForUser implements TaskService.DeleteTaskForUser
func (s *TaskServiceImpl) DeleteTaskForUser(ctx context.Context, taskID, userID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.find(ctx, "delete_task_for_user", taskID, userID)
	if err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, existing); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// removed between lookup and delete
			log.Debug("task disappeared before delete",
				"task_id", taskID,
				"user_id", userID)
			return taskNotFound(taskID, userID)
		}
		log.Error("failed to delete task",
			"error", err,
			"task_id", taskID,
			"user_id", userID)
		return NewTaskServiceError("delete_task_for_user", "failed to delete task", err)
	}

	log.Info("task deleted successfully",
		"task_id", taskID,
		"user_id", userID)
	return nil
}

// find looks up a task by (taskID, userID) and maps absence to TASK_NOT_FOUND.
func (s *TaskServiceImpl) find(ctx context.Context, operation, taskID, userID string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.FindByIDAndOwner(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("task not found",
				"operation", operation,
				"task_id", taskID,
				"user_id", userID)
			return nil, taskNotFound(taskID, userID)
		}
		log.Error("failed to retrieve task",
			"error", err,
			"operation", operation,
			"task_id", taskID,
			"user_id", userID)
		return nil, NewTaskServiceError(operation, "failed to retrieve task", err)
	}

	return task, nil
}
