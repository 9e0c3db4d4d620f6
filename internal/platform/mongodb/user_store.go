package mongodb

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// userDocument is the stored shape of a user. The task list is never stored.
type userDocument struct {
	ID       string `bson:"_id"`
	Username string `bson:"username"`
	Email    string `bson:"email"`
}

func toUserDocument(u *domain.User) userDocument {
	return userDocument{ID: u.UserID, Username: u.Username, Email: u.Email}
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{UserID: d.ID, Username: d.Username, Email: d.Email}
}

// UserStore implements store.UserStore on a MongoDB collection.
type UserStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewUserStore creates a UserStore backed by the users collection of db.
// If logger is nil, a default logger will be used.
func NewUserStore(db *mongo.Database, logger *slog.Logger) *UserStore {
	if db == nil {
		// ALLOW-PANIC: constructor precondition
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		coll:   db.Collection(UsersCollection),
		logger: logger.With(slog.String("component", "mongo_user_store")),
	}
}

var _ store.UserStore = (*UserStore)(nil)

// FindByID implements store.UserStore.FindByID
func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findOne(ctx, "find_by_id", bson.M{"_id": id})
}

// FindByUsername implements store.UserStore.FindByUsername
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.findOne(ctx, "find_by_username", bson.M{"username": username})
}

// FindByEmail implements store.UserStore.FindByEmail
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, "find_by_email", bson.M{"email": email})
}

// Save implements store.UserStore.Save as an upsert keyed by _id.
func (s *UserStore) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if user == nil {
		return nil, store.NewStoreError("user", "save", "user is nil", store.ErrInvalidEntity)
	}

	doc := toUserDocument(user)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		log.Error("failed to save user",
			slog.String("user_id", user.UserID),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", "save", "failed to save user", MapError(err))
	}

	log.Debug("user saved", slog.String("user_id", doc.ID))
	return doc.toDomain(), nil
}

func (s *UserStore) findOne(ctx context.Context, operation string, filter bson.M) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Usernames and emails are not unique; the lowest id wins.
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})

	var doc userDocument
	err := s.coll.FindOne(ctx, filter, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Debug("user not found", slog.String("operation", operation))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to query user",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", operation, "failed to query user", MapError(err))
	}

	return doc.toDomain(), nil
}
