package mocks

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	RegisterUserFn       func(ctx context.Context, user *domain.User) (*domain.User, error)
	FindUserByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	FindByUserIDFn       func(ctx context.Context, id string) (*domain.User, error)

	// Default return values
	User         *domain.User
	DefaultError error
}

var _ service.UserService = (*MockUserService)(nil)

// RegisterUser implements the UserService.RegisterUser method
func (m *MockUserService) RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.RegisterUserFn != nil {
		return m.RegisterUserFn(ctx, user)
	}
	return m.User, m.DefaultError
}

// FindUserByUsername implements the UserService.FindUserByUsername method
func (m *MockUserService) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindUserByUsernameFn != nil {
		return m.FindUserByUsernameFn(ctx, username)
	}
	return m.User, m.DefaultError
}

// FindByUserID implements the UserService.FindByUserID method
func (m *MockUserService) FindByUserID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByUserIDFn != nil {
		return m.FindByUserIDFn(ctx, id)
	}
	return m.User, m.DefaultError
}
