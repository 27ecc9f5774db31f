package testutils

import (
	"testing"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewID returns a fresh, well-formed 24-character hex identifier.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// TaskOption is a function that modifies a Task
type TaskOption func(*domain.Task)

// WithTaskID sets the task ID.
func WithTaskID(id string) TaskOption {
	return func(t *domain.Task) {
		t.ID = id
	}
}

// WithTaskTitle sets the task title.
func WithTaskTitle(title string) TaskOption {
	return func(t *domain.Task) {
		t.Title = title
	}
}

// WithTaskDescription sets the task description.
func WithTaskDescription(description string) TaskOption {
	return func(t *domain.Task) {
		t.Description = description
	}
}

// WithTaskStatus sets the status and the derived completion flag.
func WithTaskStatus(status domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = status
		t.SyncCompleted()
	}
}

// WithTaskDueDate sets the due date.
func WithTaskDueDate(due time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &due
	}
}

// WithTaskAssignee assigns the task to user.
func WithTaskAssignee(user *domain.User) TaskOption {
	return func(t *domain.Task) {
		t.AssignedTo = user.Ref()
	}
}

// MustCreateTaskForTest creates a valid pending task with an ID, applying
// opts in order. It fails the test if the result does not validate.
func MustCreateTaskForTest(t *testing.T, opts ...TaskOption) *domain.Task {
	t.Helper()

	task, err := domain.NewTask("Test task", "", domain.TaskStatusPending, nil)
	require.NoError(t, err, "Failed to create test task")
	task.ID = NewID()

	for _, opt := range opts {
		opt(task)
	}

	require.NoError(t, task.Validate(), "Test task options produced an invalid task")
	return task
}

// UserOption is a function that modifies a User
type UserOption func(*domain.User)

// WithUserName sets the user name.
func WithUserName(name string) UserOption {
	return func(u *domain.User) {
		u.Name = name
	}
}

// WithUserEmail sets the user email.
func WithUserEmail(email string) UserOption {
	return func(u *domain.User) {
		u.Email = email
	}
}

// MustCreateUserForTest creates a valid user with an ID and a unique email.
func MustCreateUserForTest(t *testing.T, opts ...UserOption) *domain.User {
	t.Helper()

	id := NewID()
	user, err := domain.NewUser("Test User", "user-"+id+"@example.com")
	require.NoError(t, err, "Failed to create test user")
	user.ID = id

	for _, opt := range opts {
		opt(user)
	}

	require.NoError(t, user.Validate(), "Test user options produced an invalid user")
	return user
}
