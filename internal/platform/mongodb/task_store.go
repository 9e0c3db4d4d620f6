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

type taskDocument struct {
	ID          string `bson:"_id"`
	UserID      string `bson:"userId"`
	Title       string `bson:"title"`
	Description string `bson:"description"`
	DueDate     string `bson:"dueDate"`
	Priority    string `bson:"priority"`
	Completed   bool   `bson:"completed"`
}

func toTaskDocument(t *domain.Task) taskDocument {
	return taskDocument{
		ID:          t.TaskID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Completed:   t.Completed,
	}
}

func (d taskDocument) toDomain() *domain.Task {
	return &domain.Task{
		TaskID:      d.ID,
		UserID:      d.UserID,
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate,
		Priority:    d.Priority,
		Completed:   d.Completed,
	}
}

// TaskStore implements store.TaskStore on a MongoDB collection.
type TaskStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewTaskStore creates a TaskStore backed by the tasks collection of db.
// If logger is nil, a default logger will be used.
func NewTaskStore(db *mongo.Database, logger *slog.Logger) *TaskStore {
	if db == nil {
		// ALLOW-PANIC: constructor precondition
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		coll:   db.Collection(TasksCollection),
		logger: logger.With(slog.String("component", "mongo_task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// FindByOwner implements store.TaskStore.FindByOwner
func (s *TaskStore) FindByOwner(ctx context.Context, userID string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cursor, err := s.coll.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		log.Error("failed to query tasks by owner",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "find_by_owner", "failed to query tasks", MapError(err))
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, store.NewStoreError("task", "find_by_owner", "failed to decode tasks", MapError(err))
	}

	tasks := make([]*domain.Task, 0, len(docs))
	for _, d := range docs {
		tasks = append(tasks, d.toDomain())
	}

	log.Debug("tasks retrieved",
		slog.String("user_id", userID),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// FindByIDAndOwner implements store.TaskStore.FindByIDAndOwner
func (s *TaskStore) FindByIDAndOwner(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var doc taskDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": taskID, "userId": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
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

	return doc.toDomain(), nil
}

// Save implements store.TaskStore.Save as an upsert keyed by _id.
func (s *TaskStore) Save(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if task == nil {
		return nil, store.NewStoreError("task", "save", "task is nil", store.ErrInvalidEntity)
	}

	doc := toTaskDocument(task)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		log.Error("failed to save task",
			slog.String("task_id", task.TaskID),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "save", "failed to save task", MapError(err))
	}

	log.Debug("task saved",
		slog.String("task_id", doc.ID),
		slog.String("user_id", doc.UserID))
	return doc.toDomain(), nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if task == nil {
		return store.NewStoreError("task", "delete", "task is nil", store.ErrInvalidEntity)
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": task.TaskID, "userId": task.UserID})
	if err != nil {
		log.Error("failed to delete task",
			slog.String("task_id", task.TaskID),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "delete", "failed to delete task", MapError(err))
	}
	if res.DeletedCount == 0 {
		return store.ErrTaskNotFound
	}

	log.Debug("task deleted",
		slog.String("task_id", task.TaskID),
		slog.String("user_id", task.UserID))
	return nil
}
