package service

import (
	"errors"
	"testing"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestServiceError_Error(t *testing.T) {
	tests := []struct {
		name     string
		service  string
		op       string
		err      error
		expected string
	}{
		{
			name:     "with underlying error",
			service:  "user",
			op:       "create",
			err:      errors.New("database connection failed"),
			expected: "user service create operation failed: database connection failed",
		},
		{
			name:     "without underlying error",
			service:  "task",
			op:       "delete",
			err:      nil,
			expected: "task service delete operation failed",
		},
		{
			name:     "with sentinel error",
			service:  "task",
			op:       "get",
			err:      store.ErrTaskNotFound,
			expected: "task service get operation failed: entity not found: task",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceErr := &ServiceError{
				Service: tt.service,
				Op:      tt.op,
				Err:     tt.err,
			}

			assert.Equal(t, tt.expected, serviceErr.Error())
		})
	}
}

func TestServiceError_ErrorsIs(t *testing.T) {
	t.Run("errors.Is works with wrapped error", func(t *testing.T) {
		underlyingErr := errors.New("database connection failed")
		assert.True(t, errors.Is(newUserError("create", underlyingErr), underlyingErr))
	})

	t.Run("errors.Is works with store sentinels", func(t *testing.T) {
		err := newTaskError("get", store.ErrTaskNotFound)
		assert.True(t, errors.Is(err, store.ErrTaskNotFound))
		assert.True(t, errors.Is(err, store.ErrNotFound))
		assert.False(t, errors.Is(err, store.ErrUserNotFound))
	})

	t.Run("errors.Is works with provider errors", func(t *testing.T) {
		err := newTaskError("list", store.ErrConfigurationMissing)
		assert.True(t, store.IsUnavailableError(err))
	})

	t.Run("errors.As finds the service error", func(t *testing.T) {
		var serviceErr *ServiceError
		assert.True(t, errors.As(newTaskError("patch", store.ErrTaskNotFound), &serviceErr))
		assert.Equal(t, "patch", serviceErr.Op)
	})
}

func TestResolveStatus(t *testing.T) {
	completed := true
	notCompleted := false
	inProgress := domain.TaskStatusInProgress
	done := domain.TaskStatusCompleted

	status, err := resolveStatus(nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, "pending", string(status))

	status, err = resolveStatus(nil, &completed)
	assert.NoError(t, err)
	assert.Equal(t, "completed", string(status))

	status, err = resolveStatus(&inProgress, &notCompleted)
	assert.NoError(t, err)
	assert.Equal(t, "in-progress", string(status))

	_, err = resolveStatus(&done, &notCompleted)
	assert.Error(t, err)
}
