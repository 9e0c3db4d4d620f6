package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/tasks-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	UsersCollection = "users"
	TasksCollection = "tasks"
)

// Connect opens a client for uri and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, nil
}

// EnsureIndexes creates the secondary indexes the stores query by. It is
// idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	_, err = db.Collection(TasksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create task indexes: %w", err)
	}

	return nil
}

// MapError maps a driver error to the matching store sentinel.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}

	return err
}
