package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/platform/memory"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newInMemoryServices() (service.UserService, service.TaskService) {
	users := memory.NewUserStore()
	tasks := memory.NewTaskStore()
	return service.NewUserService(users, tasks, testLogger()), service.NewTaskService(tasks, testLogger())
}

func sampleTask(taskID, userID string) *domain.Task {
	return &domain.Task{
		TaskID:      taskID,
		Title:       "T",
		Description: "D",
		DueDate:     "2024-01-01",
		Priority:    "high",
		Completed:   false,
		UserID:      userID,
	}
}

func TestTaskService_CreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps supplied id", func(t *testing.T) {
		taskStore := new(mocks.TestifyMockTaskStore)
		task := sampleTask("t1", "1")
		taskStore.On("Save", mock.Anything, task).Return(task, nil)

		svc := service.NewTaskService(taskStore, testLogger())
		saved, err := svc.CreateTask(ctx, task)

		require.NoError(t, err)
		assert.Equal(t, "t1", saved.TaskID)
		taskStore.AssertExpectations(t)
	})

	t.Run("generates id when blank", func(t *testing.T) {
		taskStore := new(mocks.TestifyMockTaskStore)
		var captured *domain.Task
		taskStore.On("Save", mock.Anything, mock.AnythingOfType("*domain.Task")).
			Run(func(args mock.Arguments) { captured = args.Get(1).(*domain.Task) }).
			Return(sampleTask("generated", "1"), nil)

		svc := service.NewTaskService(taskStore, testLogger())
		input := sampleTask("", "1")
		_, err := svc.CreateTask(ctx, input)

		require.NoError(t, err)
		require.NotNil(t, captured)
		_, parseErr := uuid.Parse(captured.TaskID)
		assert.NoError(t, parseErr)
		assert.Empty(t, input.TaskID, "caller's task is not mutated")
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		taskStore := new(mocks.TestifyMockTaskStore)
		taskStore.On("Save", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		svc := service.NewTaskService(taskStore, testLogger())
		_, err := svc.CreateTask(ctx, sampleTask("t1", "1"))

		var svcErr *service.TaskServiceError
		require.True(t, errors.As(err, &svcErr))
		assert.Equal(t, "create_task", svcErr.Operation)
	})
}

func TestTaskService_GetTasksByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("returns owned tasks", func(t *testing.T) {
		taskStore := new(mocks.TestifyMockTaskStore)
		tasks := []*domain.Task{sampleTask("t1", "1")}
		taskStore.On("FindByOwner", mock.Anything, "1").Return(tasks, nil)

		svc := service.NewTaskService(taskStore, testLogger())
		got, err := svc.GetTasksByUser(ctx, "1")

		require.NoError(t, err)
		assert.Equal(t, tasks, got)
	})

	t.Run("empty result is USER_NOT_FOUND", func(t *testing.T) {
		taskStore := new(mocks.TestifyMockTaskStore)
		taskStore.On("FindByOwner", mock.Anything, "1").Return([]*domain.Task{}, nil)

		svc := service.NewTaskService(taskStore, testLogger())
		_, err := svc.GetTasksByUser(ctx, "1")

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		taskStore := new(mocks.TestifyMockTaskStore)
		taskStore.On("FindByOwner", mock.Anything, "1").Return(nil, errors.New("boom"))

		svc := service.NewTaskService(taskStore, testLogger())
		_, err := svc.GetTasksByUser(ctx, "1")

		var svcErr *service.TaskServiceError
		assert.True(t, errors.As(err, &svcErr))
		assert.False(t, errors.Is(err, domain.ErrUserNotFound))
	})
}

func TestTaskService_OwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	_, svc := newInMemoryServices()

	_, err := svc.CreateTask(ctx, sampleTask("t1", "A"))
	require.NoError(t, err)

	_, wrongOwner := svc.GetTaskByIDAndUser(ctx, "t1", "B")
	_, missing := svc.GetTaskByIDAndUser(ctx, "nope", "B")

	wrongKind, ok := domain.KindOf(wrongOwner)
	require.True(t, ok)
	missingKind, ok := domain.KindOf(missing)
	require.True(t, ok)
	assert.Equal(t, domain.KindTaskNotFound, wrongKind)
	assert.Equal(t, missingKind, wrongKind)

	var wrongErr, missingErr *domain.Error
	require.True(t, errors.As(wrongOwner, &wrongErr))
	require.True(t, errors.As(missing, &missingErr))
	assert.Empty(t, wrongErr.Fields)
	assert.Equal(t, len(missingErr.Fields), len(wrongErr.Fields))
	assert.Nil(t, wrongErr.Err)
	assert.Nil(t, missingErr.Err)
}

func TestTaskService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	_, svc := newInMemoryServices()

	task := sampleTask("t1", "1")
	task.Completed = true

	_, err := svc.CreateTask(ctx, task)
	require.NoError(t, err)

	got, err := svc.GetTaskByIDAndUser(ctx, task.TaskID, task.UserID)
	require.NoError(t, err)
	assert.Equal(t, task, got)
}

func TestTaskService_UpdateTaskForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("preserves identity", func(t *testing.T) {
		_, svc := newInMemoryServices()
		_, err := svc.CreateTask(ctx, sampleTask("t1", "1"))
		require.NoError(t, err)

		updated := &domain.Task{
			TaskID:      "ignored",
			Title:       "New title",
			Description: "New description",
			DueDate:     "2025-01-01",
			Priority:    "low",
			Completed:   true,
			UserID:      "1",
		}
		got, err := svc.UpdateTaskForUser(ctx, "t1", updated)

		require.NoError(t, err)
		assert.Equal(t, "t1", got.TaskID)
		assert.Equal(t, "1", got.UserID)
		assert.Equal(t, "New title", got.Title)
		assert.Equal(t, "New description", got.Description)
		assert.Equal(t, "2025-01-01", got.DueDate)
		assert.Equal(t, "low", got.Priority)
		assert.True(t, got.Completed)

		stored, err := svc.GetTaskByIDAndUser(ctx, "t1", "1")
		require.NoError(t, err)
		assert.Equal(t, got, stored)

		_, err = svc.GetTaskByIDAndUser(ctx, "ignored", "1")
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("other owner cannot update", func(t *testing.T) {
		taskStore := new(mocks.TestifyMockTaskStore)
		taskStore.On("FindByIDAndOwner", mock.Anything, "t1", "2").Return(nil, store.ErrTaskNotFound)

		svc := service.NewTaskService(taskStore, testLogger())
		_, err := svc.UpdateTaskForUser(ctx, "t1", sampleTask("", "2"))

		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
		taskStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("lookup failure is wrapped", func(t *testing.T) {
		taskStore := new(mocks.TestifyMockTaskStore)
		taskStore.On("FindByIDAndOwner", mock.Anything, "t1", "1").Return(nil, errors.New("boom"))

		svc := service.NewTaskService(taskStore, testLogger())
		_, err := svc.UpdateTaskForUser(ctx, "t1", sampleTask("", "1"))

		var svcErr *service.TaskServiceError
		require.True(t, errors.As(err, &svcErr))
		assert.Equal(t, "update_task_for_user", svcErr.Operation)
	})
}

func TestTaskService_DeleteTaskForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("missing task performs no delete", func(t *testing.T) {
		taskStore := new(mocks.TestifyMockTaskStore)
		taskStore.On("FindByIDAndOwner", mock.Anything, "t1", "1").Return(nil, store.ErrTaskNotFound)

		svc := service.NewTaskService(taskStore, testLogger())
		err := svc.DeleteTaskForUser(ctx, "t1", "1")

		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
		taskStore.AssertNumberOfCalls(t, "Delete", 0)
	})

	t.Run("deletes the stored record", func(t *testing.T) {
		taskStore := new(mocks.TestifyMockTaskStore)
		stored := sampleTask("t1", "1")
		taskStore.On("FindByIDAndOwner", mock.Anything, "t1", "1").Return(stored, nil)
		taskStore.On("Delete", mock.Anything, stored).Return(nil)

		svc := service.NewTaskService(taskStore, testLogger())
		require.NoError(t, svc.DeleteTaskForUser(ctx, "t1", "1"))

		taskStore.AssertNumberOfCalls(t, "Delete", 1)
	})

	t.Run("delete failure is wrapped", func(t *testing.T) {
		taskStore := new(mocks.TestifyMockTaskStore)
		stored := sampleTask("t1", "1")
		taskStore.On("FindByIDAndOwner", mock.Anything, "t1", "1").Return(stored, nil)
		taskStore.On("Delete", mock.Anything, stored).Return(errors.New("boom"))

		svc := service.NewTaskService(taskStore, testLogger())
		err := svc.DeleteTaskForUser(ctx, "t1", "1")

		var svcErr *service.TaskServiceError
		assert.True(t, errors.As(err, &svcErr))
	})

	t.Run("in-memory delete", func(t *testing.T) {
		_, svc := newInMemoryServices()
		_, err := svc.CreateTask(ctx, sampleTask("t1", "1"))
		require.NoError(t, err)

		assert.ErrorIs(t, svc.DeleteTaskForUser(ctx, "t1", "2"), domain.ErrTaskNotFound)
		require.NoError(t, svc.DeleteTaskForUser(ctx, "t1", "1"))
		assert.ErrorIs(t, svc.DeleteTaskForUser(ctx, "t1", "1"), domain.ErrTaskNotFound)
	})
}

func TestScenario_AliceRegistersAndCreatesTask(t *testing.T) {
	ctx := context.Background()
	users, tasks := newInMemoryServices()

	_, err := users.RegisterUser(ctx, &domain.User{UserID: "1", Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = users.RegisterUser(ctx, &domain.User{UserID: "1", Username: "alice", Email: "a@x.com"})
	assert.True(t, domain.IsKind(err, domain.KindUserExists))

	task := sampleTask("t1", "1")
	_, err = tasks.CreateTask(ctx, task)
	require.NoError(t, err)

	_, err = tasks.GetTaskByIDAndUser(ctx, "t1", "2")
	assert.True(t, domain.IsKind(err, domain.KindTaskNotFound))

	got, err := tasks.GetTaskByIDAndUser(ctx, "t1", "1")
	require.NoError(t, err)
	assert.Equal(t, task, got)

	alice, err := users.FindByUserID(ctx, "1")
	require.NoError(t, err)
	require.Len(t, alice.Tasks, 1)
	assert.Equal(t, task, alice.Tasks[0])
}
