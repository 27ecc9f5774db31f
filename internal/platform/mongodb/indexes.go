package mongodb

import (
	"context"
	"fmt"
)

// EnsureIndexes creates the indexes the stores rely on. Creating an index that
// already exists is a no-op, so it is safe to run after every connection.
// It has the ConnectHook signature.
func EnsureIndexes(ctx context.Context, session *Session) error {
	if _, err := session.Collection(UsersCollection).Indexes().CreateMany(ctx, userIndexModels()); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", UsersCollection, err)
	}

	if _, err := session.Collection(TasksCollection).Indexes().CreateMany(ctx, taskIndexModels()); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", TasksCollection, err)
	}

	return nil
}

var _ ConnectHook = EnsureIndexes
