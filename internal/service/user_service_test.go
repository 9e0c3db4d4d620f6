package service_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestUserService_RegisterUser(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{UserID: "1", Username: "alice", Email: "a@x.com"}

	t.Run("new user is saved", func(t *testing.T) {
		userStore := new(mocks.TestifyMockUserStore)
		taskStore := new(mocks.TestifyMockTaskStore)

		userStore.On("FindByID", mock.Anything, "1").Return(nil, store.ErrUserNotFound)
		userStore.On("Save", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.UserID == "1" && u.Username == "alice" && u.Tasks == nil
		})).Return(user.Stored(), nil)

		svc := service.NewUserService(userStore, taskStore, testLogger())
		saved, err := svc.RegisterUser(ctx, user)

		require.NoError(t, err)
		assert.Equal(t, "1", saved.UserID)
		userStore.AssertExpectations(t)
		taskStore.AssertNotCalled(t, "FindByOwner", mock.Anything, mock.Anything)
	})

	t.Run("existing id fails with USER_EXISTS", func(t *testing.T) {
		userStore := new(mocks.TestifyMockUserStore)
		taskStore := new(mocks.TestifyMockTaskStore)

		userStore.On("FindByID", mock.Anything, "1").Return(user.Stored(), nil)

		svc := service.NewUserService(userStore, taskStore, testLogger())
		saved, err := svc.RegisterUser(ctx, &domain.User{UserID: "1", Username: "bob", Email: "b@x.com"})

		assert.Nil(t, saved)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUserExists))
		assert.Contains(t, err.Error(), "User with ID 1 already exists.")
		userStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("lookup failure is not treated as absence", func(t *testing.T) {
		userStore := new(mocks.TestifyMockUserStore)
		taskStore := new(mocks.TestifyMockTaskStore)

		dbErr := errors.New("connection refused")
		userStore.On("FindByID", mock.Anything, "1").Return(nil, dbErr)

		svc := service.NewUserService(userStore, taskStore, testLogger())
		_, err := svc.RegisterUser(ctx, user)

		require.Error(t, err)
		var svcErr *service.UserServiceError
		require.True(t, errors.As(err, &svcErr))
		assert.Equal(t, "register_user", svcErr.Operation)
		assert.ErrorIs(t, err, dbErr)
		_, isDomain := domain.KindOf(err)
		assert.False(t, isDomain)
		userStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("save failure", func(t *testing.T) {
		userStore := new(mocks.TestifyMockUserStore)
		taskStore := new(mocks.TestifyMockTaskStore)

		userStore.On("FindByID", mock.Anything, "1").Return(nil, store.ErrUserNotFound)
		userStore.On("Save", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

		svc := service.NewUserService(userStore, taskStore, testLogger())
		_, err := svc.RegisterUser(ctx, user)

		var svcErr *service.UserServiceError
		require.True(t, errors.As(err, &svcErr))
		assert.Equal(t, "failed to save user", svcErr.Message)
	})
}

func TestUserService_FindUserByUsername(t *testing.T) {
	ctx := context.Background()
	stored := &domain.User{UserID: "1", Username: "alice", Email: "a@x.com"}

	t.Run("hit hydrates tasks", func(t *testing.T) {
		userStore := new(mocks.TestifyMockUserStore)
		taskStore := new(mocks.TestifyMockTaskStore)

		tasks := []*domain.Task{{TaskID: "t1", UserID: "1"}, {TaskID: "t2", UserID: "1"}}
		userStore.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)
		taskStore.On("FindByOwner", mock.Anything, "1").Return(tasks, nil)

		svc := service.NewUserService(userStore, taskStore, testLogger())
		user, err := svc.FindUserByUsername(ctx, "alice")

		require.NoError(t, err)
		assert.Equal(t, tasks, user.Tasks)
		assert.Nil(t, stored.Tasks, "store value is not mutated")
	})

	t.Run("no tasks is not an error", func(t *testing.T) {
		userStore := new(mocks.TestifyMockUserStore)
		taskStore := new(mocks.TestifyMockTaskStore)

		userStore.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)
		taskStore.On("FindByOwner", mock.Anything, "1").Return([]*domain.Task{}, nil)

		svc := service.NewUserService(userStore, taskStore, testLogger())
		user, err := svc.FindUserByUsername(ctx, "alice")

		require.NoError(t, err)
		assert.NotNil(t, user.Tasks)
		assert.Empty(t, user.Tasks)
	})

	t.Run("miss fails with USER_NOT_FOUND", func(t *testing.T) {
		userStore := new(mocks.TestifyMockUserStore)
		taskStore := new(mocks.TestifyMockTaskStore)

		userStore.On("FindByUsername", mock.Anything, "ghost").Return(nil, store.ErrUserNotFound)

		svc := service.NewUserService(userStore, taskStore, testLogger())
		_, err := svc.FindUserByUsername(ctx, "ghost")

		assert.True(t, domain.IsKind(err, domain.KindUserNotFound))
		assert.Contains(t, err.Error(), "User with username ghost not found.")
		taskStore.AssertNotCalled(t, "FindByOwner", mock.Anything, mock.Anything)
	})

	t.Run("hydration failure is an internal error", func(t *testing.T) {
		userStore := new(mocks.TestifyMockUserStore)
		taskStore := new(mocks.TestifyMockTaskStore)

		userStore.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)
		taskStore.On("FindByOwner", mock.Anything, "1").Return(nil, errors.New("timeout"))

		svc := service.NewUserService(userStore, taskStore, testLogger())
		_, err := svc.FindUserByUsername(ctx, "alice")

		var svcErr *service.UserServiceError
		require.True(t, errors.As(err, &svcErr))
		assert.Equal(t, "load_tasks", svcErr.Operation)
		assert.False(t, errors.Is(err, domain.ErrUserNotFound))
	})
}

func TestUserService_FindByUserID(t *testing.T) {
	ctx := context.Background()

	t.Run("hit hydrates tasks", func(t *testing.T) {
		userStore := new(mocks.TestifyMockUserStore)
		taskStore := new(mocks.TestifyMockTaskStore)

		userStore.On("FindByID", mock.Anything, "1").
			Return(&domain.User{UserID: "1", Username: "alice", Email: "a@x.com"}, nil)
		taskStore.On("FindByOwner", mock.Anything, "1").
			Return([]*domain.Task{{TaskID: "t1", UserID: "1"}}, nil)

		svc := service.NewUserService(userStore, taskStore, testLogger())
		user, err := svc.FindByUserID(ctx, "1")

		require.NoError(t, err)
		require.Len(t, user.Tasks, 1)
		assert.Equal(t, "t1", user.Tasks[0].TaskID)
	})

	t.Run("miss fails with USER_NOT_FOUND", func(t *testing.T) {
		userStore := new(mocks.TestifyMockUserStore)
		taskStore := new(mocks.TestifyMockTaskStore)

		userStore.On("FindByID", mock.Anything, "9").Return(nil, store.ErrUserNotFound)

		svc := service.NewUserService(userStore, taskStore, testLogger())
		_, err := svc.FindByUserID(ctx, "9")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.Contains(t, err.Error(), "User with ID 9 not found.")
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		userStore := new(mocks.TestifyMockUserStore)
		taskStore := new(mocks.TestifyMockTaskStore)

		userStore.On("FindByID", mock.Anything, "1").Return(nil, errors.New("boom"))

		svc := service.NewUserService(userStore, taskStore, testLogger())
		_, err := svc.FindByUserID(ctx, "1")

		var svcErr *service.UserServiceError
		assert.True(t, errors.As(err, &svcErr))
	})
}

func TestUserService_Uniqueness(t *testing.T) {
	ctx := context.Background()
	svc, _ := newInMemoryServices()

	_, err := svc.RegisterUser(ctx, &domain.User{UserID: "1", Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = svc.RegisterUser(ctx, &domain.User{UserID: "1", Username: "different", Email: "d@x.com"})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	_, err = svc.RegisterUser(ctx, &domain.User{UserID: "2", Username: "alice", Email: "a@x.com"})
	assert.NoError(t, err, "uniqueness is by id alone")
}
