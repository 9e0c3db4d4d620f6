package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskStore is an in-memory store.TaskStore. It is safe for concurrent use.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
	// seq records insertion order so FindByOwner is stable.
	seq  map[string]uint64
	next uint64
}

// NewTaskStore creates an empty TaskStore.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[string]domain.Task),
		seq:   make(map[string]uint64),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// FindByOwner implements store.TaskStore.FindByOwner
func (s *TaskStore) FindByOwner(_ context.Context, userID string) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*domain.Task, 0)
	for _, t := range s.tasks {
		if t.UserID == userID {
			tasks = append(tasks, t.Clone())
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return s.seq[tasks[i].TaskID] < s.seq[tasks[j].TaskID]
	})
	return tasks, nil
}

// FindByIDAndOwner implements store.TaskStore.FindByIDAndOwner
func (s *TaskStore) FindByIDAndOwner(_ context.Context, taskID, userID string) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, store.ErrTaskNotFound
	}
	return t.Clone(), nil
}

// Save implements store.TaskStore.Save
func (s *TaskStore) Save(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, store.NewStoreError("task", "save", "task is nil", store.ErrInvalidEntity)
	}

	stored := *task

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seq[stored.TaskID]; !exists {
		s.next++
		s.seq[stored.TaskID] = s.next
	}
	s.tasks[stored.TaskID] = stored

	return stored.Clone(), nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(_ context.Context, task *domain.Task) error {
	if task == nil {
		return store.NewStoreError("task", "delete", "task is nil", store.ErrInvalidEntity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[task.TaskID]
	if !ok || t.UserID != task.UserID {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, task.TaskID)
	delete(s.seq, task.TaskID)
	return nil
}
