package mocks

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockUserStore is a mock of store.UserStore interface for use with testify/mock
type TestifyMockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*TestifyMockUserStore)(nil)

// FindByID is a mock implementation of store.UserStore.FindByID
func (m *TestifyMockUserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByUsername is a mock implementation of store.UserStore.FindByUsername
func (m *TestifyMockUserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByEmail is a mock implementation of store.UserStore.FindByEmail
func (m *TestifyMockUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// Save is a mock implementation of store.UserStore.Save
func (m *TestifyMockUserStore) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if saved, ok := args.Get(0).(*domain.User); ok {
		return saved, args.Error(1)
	}
	return nil, args.Error(1)
}
