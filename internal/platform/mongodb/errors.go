package mongodb

import (
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// MapError maps a driver error to the matching store error while keeping the
// original error in the chain. notFound is returned (wrapped) when the
// operation matched no document. Errors that already belong to the store
// taxonomy, such as provider failures, pass through unchanged.
func MapError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	if store.IsUnavailableError(err) {
		return err
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		if notFound == nil {
			notFound = store.ErrNotFound
		}
		return errors.Wrap(notFound, err.Error())
	}

	if mongo.IsDuplicateKeyError(err) {
		return errors.Wrap(store.ErrDuplicate, err.Error())
	}

	return err
}

// IsDuplicateKey reports whether err is a unique index violation.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return mongo.IsDuplicateKeyError(errors.Cause(err))
}

// redactedError renders err for logging with credentials and hosts removed.
func redactedError(err error) string {
	return redact.Error(err)
}
