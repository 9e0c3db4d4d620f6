package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// UserStore is an in-memory store.UserStore. It is safe for concurrent use.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewUserStore creates an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]domain.User)}
}

var _ store.UserStore = (*UserStore)(nil)

// FindByID implements store.UserStore.FindByID
func (s *UserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

// FindByUsername implements store.UserStore.FindByUsername
func (s *UserStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return s.findFirst(func(u domain.User) bool { return u.Username == username })
}

// FindByEmail implements store.UserStore.FindByEmail
func (s *UserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return s.findFirst(func(u domain.User) bool { return u.Email == email })
}

// Save implements store.UserStore.Save
func (s *UserStore) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, store.NewStoreError("user", "save", "user is nil", store.ErrInvalidEntity)
	}

	stored := *user.Stored()

	s.mu.Lock()
	s.users[stored.UserID] = stored
	s.mu.Unlock()

	return &stored, nil
}

// findFirst returns the matching user with the lowest id so results do not
// depend on map order.
func (s *UserStore) findFirst(match func(domain.User) bool) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.users))
	for id, u := range s.users {
		if match(u) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, store.ErrUserNotFound
	}
	sort.Strings(ids)

	u := s.users[ids[0]]
	return &u, nil
}
