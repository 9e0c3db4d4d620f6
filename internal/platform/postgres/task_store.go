package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

const (
	taskColumns = `task_id, user_id, title, description, due_date, priority, completed`

	selectTasksByOwnerQuery = `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY created_at, task_id`

	selectTaskByIDAndOwnerQuery = `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = $1 AND user_id = $2`

	upsertTaskQuery = `
		INSERT INTO tasks (` + taskColumns + `, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (task_id) DO UPDATE
		SET user_id = EXCLUDED.user_id,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			due_date = EXCLUDED.due_date,
			priority = EXCLUDED.priority,
			completed = EXCLUDED.completed,
			updated_at = NOW()
		RETURNING ` + taskColumns

	deleteTaskQuery = `DELETE FROM tasks WHERE task_id = $1 AND user_id = $2`
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: constructor precondition
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	task := &domain.Task{}
	err := row.Scan(
		&task.TaskID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.Priority,
		&task.Completed,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// FindByOwner implements store.TaskStore.FindByOwner
func (s *PostgresTaskStore) FindByOwner(ctx context.Context, userID string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, selectTasksByOwnerQuery, userID)
	if err != nil {
		log.Error("failed to query tasks by owner",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "find_by_owner", "failed to query tasks", MapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, store.NewStoreError("task", "find_by_owner", "failed to scan task", MapError(err))
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "find_by_owner", "failed to iterate tasks", MapError(err))
	}

	log.Debug("tasks retrieved",
		slog.String("user_id", userID),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// FindByIDAndOwner implements store.TaskStore.FindByIDAndOwner
func (s *PostgresTaskStore) FindByIDAndOwner(
	ctx context.Context,
	taskID, userID string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := scanTask(s.db.QueryRowContext(ctx, selectTaskByIDAndOwnerQuery, taskID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found",
				slog.String("task_id", taskID),
				slog.String("user_id", userID))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to query task",
			slog.String("task_id", taskID),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "find_by_id_and_owner", "failed to query task", MapError(err))
	}

	return task, nil
}

// Save implements store.TaskStore.Save.
// An existing row with the same task id is replaced.
func (s *PostgresTaskStore) Save(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if task == nil {
		return nil, store.NewStoreError("task", "save", "task is nil", store.ErrInvalidEntity)
	}

	saved, err := scanTask(s.db.QueryRowContext(ctx, upsertTaskQuery,
		task.TaskID,
		task.UserID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Priority,
		task.Completed,
	))
	if err != nil {
		log.Error("failed to save task",
			slog.String("task_id", task.TaskID),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "save", "failed to save task", MapError(err))
	}

	log.Debug("task saved",
		slog.String("task_id", saved.TaskID),
		slog.String("user_id", saved.UserID))
	return saved, nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if task == nil {
		return store.NewStoreError("task", "delete", "task is nil", store.ErrInvalidEntity)
	}

	result, err := s.db.ExecContext(ctx, deleteTaskQuery, task.TaskID, task.UserID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("task_id", task.TaskID),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "delete", "failed to delete task", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	log.Debug("task deleted",
		slog.String("task_id", task.TaskID),
		slog.String("user_id", task.UserID))
	return nil
}
