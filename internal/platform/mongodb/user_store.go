package mongodb

import (
	"context"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserStore implements the store.UserStore interface
// using MongoDB as the storage backend.
type MongoUserStore struct {
	sessions SessionSource
	logger   *slog.Logger
}

// NewMongoUserStore creates a new MongoDB implementation of the UserStore interface.
// If logger is nil, a default logger will be used.
func NewMongoUserStore(sessions SessionSource, logger *slog.Logger) *MongoUserStore {
	if sessions == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("sessions cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &MongoUserStore{
		sessions: sessions,
		logger:   logger.With(slog.String("component", "user_store")),
	}
}

// Ensure MongoUserStore implements store.UserStore interface
var _ store.UserStore = (*MongoUserStore)(nil)

// Create implements store.UserStore.Create
// It returns store.ErrEmailExists if the email is already registered.
func (s *MongoUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return store.NewStoreError("user", "create", "invalid user", errors.Wrap(store.ErrInvalidEntity, err.Error()))
	}

	session, err := s.sessions.Acquire(ctx)
	if err != nil {
		return err
	}

	res, err := session.Collection(UsersCollection).InsertOne(ctx, newUserDocument(user))
	if err != nil {
		if IsDuplicateKey(err) {
			log.Warn("attempt to create user with existing email")
			return store.ErrEmailExists
		}
		log.Error("failed to insert user", slog.String("error", redactedError(err)))
		return errors.Wrap(MapError(err, nil), "inserting user")
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}

	log.Debug("user created", slog.String("user_id", user.ID))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *MongoUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := parseObjectID("user", id)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var doc userDocument
	err = session.Collection(UsersCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		return nil, errors.Wrap(MapError(err, store.ErrUserNotFound), "finding user")
	}

	return doc.toDomain(), nil
}

// userIndexModels lists the indexes on the users collection.
func userIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
	}
}
