package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// UserService provides user registration and lookup.
type UserService interface {
	// RegisterUser stores a new user. It returns a USER_EXISTS error when a
	// user with the same UserID is already stored.
	RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindUserByUsername returns the user with its tasks attached.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByUserID returns the user with its tasks attached.
	FindByUserID(ctx context.Context, id string) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, taskStore store.TaskStore, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		taskStore: taskStore,
		logger:    logger.With("component", "user_service"),
	}
}

// RegisterUser implements UserService.RegisterUser.
// The existence check and the save are separate store calls; two concurrent
// registrations of the same id can both pass the check.
func (s *UserServiceImpl) RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.userStore.FindByID(ctx, user.UserID)
	switch {
	case err == nil && existing != nil:
		log.Debug("attempted to register existing user", "user_id", user.UserID)
		return nil, domain.Errorf(domain.KindUserExists, "User with ID %s already exists.", user.UserID)
	case err != nil && !errors.Is(err, store.ErrNotFound):
		log.Error("failed to check for existing user",
			"error", err,
			"user_id", user.UserID)
		return nil, NewUserServiceError("register_user", "failed to check for existing user", err)
	}

	saved, err := s.userStore.Save(ctx, user.Stored())
	if err != nil {
		log.Error("failed to save user",
			"error", err,
			"user_id", user.UserID)
		return nil, NewUserServiceError("register_user", "failed to save user", err)
	}

	log.Info("user registered successfully", "user_id", saved.UserID)
	return saved, nil
}

// FindUserByUsername implements UserService.FindUserByUsername
func (s *UserServiceImpl) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("user not found by username", "username", username)
			return nil, domain.Errorf(domain.KindUserNotFound, "User with username %s not found.", username)
		}
		log.Error("failed to retrieve user by username",
			"error", err,
			"username", username)
		return nil, NewUserServiceError("find_user_by_username", "failed to retrieve user", err)
	}

	return s.withTasks(ctx, log, user)
}

// FindByUserID implements UserService.FindByUserID
func (s *UserServiceImpl) FindByUserID(ctx context.Context, id string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("user not found by id", "user_id", id)
			return nil, domain.Errorf(domain.KindUserNotFound, "User with ID %s not found.", id)
		}
		log.Error("failed to retrieve user by id",
			"error", err,
			"user_id", id)
		return nil, NewUserServiceError("find_by_user_id", "failed to retrieve user", err)
	}

	return s.withTasks(ctx, log, user)
}

// withTasks attaches the user's tasks. A task store failure is an internal
// error, never a not-found outcome.
func (s *UserServiceImpl) withTasks(ctx context.Context, log *slog.Logger, user *domain.User) (*domain.User, error) {
	tasks, err := s.taskStore.FindByOwner(ctx, user.UserID)
	if err != nil {
		log.Error("failed to load tasks for user",
			"error", err,
			"user_id", user.UserID)
		return nil, NewUserServiceError("load_tasks", "failed to load tasks for user "+user.UserID, err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	hydrated := *user
	hydrated.Tasks = tasks

	log.Debug("retrieved user successfully",
		"user_id", user.UserID,
		"task_count", len(tasks))
	return &hydrated, nil
}
