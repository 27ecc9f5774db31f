package store

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Every returned task has its AssignedTo reference resolved to the user's
// name and email when the user still exists. Lists are ordered newest first.
type TaskStore interface {
	// List returns every task.
	List(ctx context.Context) ([]*domain.Task, error)

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id string) (*domain.Task, error)

	// Create saves a new task and sets its ID.
	Create(ctx context.Context, task *domain.Task) error

	// Update applies a normalized partial update and returns the updated task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error)

	// Delete removes a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id string) error

	// ListByStatus returns the tasks with the given status.
	ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)

	// SearchByTitle returns the tasks whose title contains query, ignoring case.
	// The query is matched literally.
	SearchByTitle(ctx context.Context, query string) ([]*domain.Task, error)

	// ListByAssignee returns the tasks assigned to the given user.
	ListByAssignee(ctx context.Context, userID string) ([]*domain.Task, error)
}
