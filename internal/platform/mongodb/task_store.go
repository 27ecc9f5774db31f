package mongodb

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SessionSource hands out the shared database session. It is implemented by *Provider.
type SessionSource interface {
	Acquire(ctx context.Context) (*Session, error)
}

// MongoTaskStore implements the store.TaskStore interface
// using MongoDB as the storage backend.
type MongoTaskStore struct {
	sessions SessionSource
	logger   *slog.Logger
}

// NewMongoTaskStore creates a new MongoDB implementation of the TaskStore interface.
// If logger is nil, a default logger will be used.
func NewMongoTaskStore(sessions SessionSource, logger *slog.Logger) *MongoTaskStore {
	if sessions == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("sessions cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &MongoTaskStore{
		sessions: sessions,
		logger:   logger.With(slog.String("component", "task_store")),
	}
}

// Ensure MongoTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MongoTaskStore)(nil)

// newestFirst orders task lists by creation time, most recent first.
var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

// List implements store.TaskStore.List
func (s *MongoTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	return s.find(ctx, "list", bson.M{})
}

// GetByID implements store.TaskStore.GetByID
func (s *MongoTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := parseObjectID("task", id)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var doc taskDocument
	err = session.Collection(TasksCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		return nil, errors.Wrap(MapError(err, store.ErrTaskNotFound), "finding task")
	}

	task := doc.toDomain()
	if err := populateAssignees(ctx, session, []*domain.Task{task}); err != nil {
		return nil, err
	}
	return task, nil
}

// Create implements store.TaskStore.Create
// The generated ID is written back to task.
func (s *MongoTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return store.NewStoreError("task", "create", "invalid task", errors.Wrap(store.ErrInvalidEntity, err.Error()))
	}

	doc, err := newTaskDocument(task)
	if err != nil {
		return err
	}

	session, err := s.sessions.Acquire(ctx)
	if err != nil {
		return err
	}

	res, err := session.Collection(TasksCollection).InsertOne(ctx, doc)
	if err != nil {
		log.Error("failed to insert task", slog.String("error", redactedError(err)))
		return errors.Wrap(MapError(err, nil), "inserting task")
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		task.ID = oid.Hex()
	}

	log.Debug("task created", slog.String("task_id", task.ID))
	return populateAssignees(ctx, session, []*domain.Task{task})
}

// Update implements store.TaskStore.Update
func (s *MongoTaskStore) Update(
	ctx context.Context,
	id string,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	oid, err := parseObjectID("task", id)
	if err != nil {
		return nil, err
	}

	updateDoc, err := buildTaskUpdate(update, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc taskDocument
	err = session.Collection(TasksCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, updateDoc, opts).
		Decode(&doc)
	if err != nil {
		return nil, errors.Wrap(MapError(err, store.ErrTaskNotFound), "updating task")
	}

	task := doc.toDomain()
	if err := populateAssignees(ctx, session, []*domain.Task{task}); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete implements store.TaskStore.Delete
func (s *MongoTaskStore) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID("task", id)
	if err != nil {
		return err
	}

	session, err := s.sessions.Acquire(ctx)
	if err != nil {
		return err
	}

	res, err := session.Collection(TasksCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(MapError(err, nil), "deleting task")
	}
	if res.DeletedCount == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// ListByStatus implements store.TaskStore.ListByStatus
func (s *MongoTaskStore) ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	return s.find(ctx, "list_by_status", bson.M{"status": string(status)})
}

// SearchByTitle implements store.TaskStore.SearchByTitle
func (s *MongoTaskStore) SearchByTitle(ctx context.Context, query string) ([]*domain.Task, error) {
	return s.find(ctx, "search_by_title", titleFilter(query))
}

// ListByAssignee implements store.TaskStore.ListByAssignee
func (s *MongoTaskStore) ListByAssignee(ctx context.Context, userID string) ([]*domain.Task, error) {
	oid, err := parseObjectID("user", userID)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, "list_by_assignee", bson.M{"assignedTo": oid})
}

// titleFilter matches titles containing query literally, ignoring case.
func titleFilter(query string) bson.M {
	pattern := regexp.QuoteMeta(strings.TrimSpace(query))
	return bson.M{"title": primitive.Regex{Pattern: pattern, Options: "i"}}
}

func (s *MongoTaskStore) find(ctx context.Context, operation string, filter bson.M) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := session.Collection(TasksCollection).Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		log.Error("task query failed",
			slog.String("operation", operation),
			slog.String("error", redactedError(err)))
		return nil, errors.Wrapf(MapError(err, nil), "querying tasks (%s)", operation)
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrapf(err, "decoding tasks (%s)", operation)
	}

	tasks := make([]*domain.Task, 0, len(docs))
	for i := range docs {
		tasks = append(tasks, docs[i].toDomain())
	}

	if err := populateAssignees(ctx, session, tasks); err != nil {
		return nil, err
	}

	log.Debug("tasks retrieved",
		slog.String("operation", operation),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// populateAssignees resolves the name and email of every referenced user with
// a single query. References to users that no longer exist become nil.
func populateAssignees(ctx context.Context, session *Session, tasks []*domain.Task) error {
	ids := make([]primitive.ObjectID, 0, len(tasks))
	seen := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		id := task.AssigneeID()
		if id == "" || seen[id] {
			continue
		}
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		seen[id] = true
		ids = append(ids, oid)
	}

	if len(ids) == 0 {
		return nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1, "email": 1})
	cursor, err := session.Collection(UsersCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return errors.Wrap(MapError(err, nil), "resolving task assignees")
	}

	var users []userDocument
	if err := cursor.All(ctx, &users); err != nil {
		return errors.Wrap(err, "decoding task assignees")
	}

	refs := make(map[string]*domain.UserRef, len(users))
	for i := range users {
		refs[users[i].ID.Hex()] = &domain.UserRef{
			ID:    users[i].ID.Hex(),
			Name:  users[i].Name,
			Email: users[i].Email,
		}
	}

	for _, task := range tasks {
		if task.AssignedTo == nil {
			continue
		}
		task.AssignedTo = refs[task.AssignedTo.ID]
	}

	return nil
}

// taskIndexModels lists the secondary indexes on the tasks collection.
func taskIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "assignedTo", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
}
