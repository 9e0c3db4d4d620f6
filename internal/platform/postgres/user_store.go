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
	selectUserColumns = `SELECT id, username, email FROM users`

	upsertUserQuery = `
		INSERT INTO users (id, username, email, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE
		SET username = EXCLUDED.username,
			email = EXCLUDED.email,
			updated_at = NOW()
		RETURNING id, username, email`
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		// ALLOW-PANIC: constructor precondition
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// FindByID implements store.UserStore.FindByID
func (s *PostgresUserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findOne(ctx, "find_by_id", selectUserColumns+` WHERE id = $1`, id)
}

// FindByUsername implements store.UserStore.FindByUsername.
// Usernames are not unique; the row with the lowest id wins.
func (s *PostgresUserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.findOne(
		ctx,
		"find_by_username",
		selectUserColumns+` WHERE username = $1 ORDER BY id LIMIT 1`,
		username,
	)
}

// FindByEmail implements store.UserStore.FindByEmail
func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(
		ctx,
		"find_by_email",
		selectUserColumns+` WHERE email = $1 ORDER BY id LIMIT 1`,
		email,
	)
}

// Save implements store.UserStore.Save.
// An existing row with the same id is replaced.
func (s *PostgresUserStore) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if user == nil {
		return nil, store.NewStoreError("user", "save", "user is nil", store.ErrInvalidEntity)
	}

	saved := &domain.User{}
	err := s.db.QueryRowContext(ctx, upsertUserQuery, user.UserID, user.Username, user.Email).
		Scan(&saved.UserID, &saved.Username, &saved.Email)
	if err != nil {
		log.Error("failed to save user",
			slog.String("user_id", user.UserID),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", "save", "failed to save user", MapError(err))
	}

	log.Debug("user saved", slog.String("user_id", saved.UserID))
	return saved, nil
}

func (s *PostgresUserStore) findOne(
	ctx context.Context,
	operation string,
	query string,
	arg string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user := &domain.User{}
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&user.UserID, &user.Username, &user.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("operation", operation))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to query user",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", operation, "failed to query user", MapError(err))
	}

	return user, nil
}
