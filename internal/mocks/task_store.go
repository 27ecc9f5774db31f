package mocks

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	ListFn           func(ctx context.Context) ([]*domain.Task, error)
	GetByIDFn        func(ctx context.Context, id string) (*domain.Task, error)
	CreateFn         func(ctx context.Context, task *domain.Task) error
	UpdateFn         func(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error)
	DeleteFn         func(ctx context.Context, id string) error
	ListByStatusFn   func(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)
	SearchByTitleFn  func(ctx context.Context, query string) ([]*domain.Task, error)
	ListByAssigneeFn func(ctx context.Context, userID string) ([]*domain.Task, error)

	// Default return values
	Task         *domain.Task
	Tasks        []*domain.Task
	DefaultError error
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// List implements the TaskStore.List method
func (m *MockTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Tasks, m.DefaultError
}

// GetByID implements the TaskStore.GetByID method
func (m *MockTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Task, m.DefaultError
}

// Create implements the TaskStore.Create method
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return m.DefaultError
}

// Update implements the TaskStore.Update method
func (m *MockTaskStore) Update(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}
	return m.Task, m.DefaultError
}

// Delete implements the TaskStore.Delete method
func (m *MockTaskStore) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}

// ListByStatus implements the TaskStore.ListByStatus method
func (m *MockTaskStore) ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return m.Tasks, m.DefaultError
}

// SearchByTitle implements the TaskStore.SearchByTitle method
func (m *MockTaskStore) SearchByTitle(ctx context.Context, query string) ([]*domain.Task, error) {
	if m.SearchByTitleFn != nil {
		return m.SearchByTitleFn(ctx, query)
	}
	return m.Tasks, m.DefaultError
}

// ListByAssignee implements the TaskStore.ListByAssignee method
func (m *MockTaskStore) ListByAssignee(ctx context.Context, userID string) ([]*domain.Task, error) {
	if m.ListByAssigneeFn != nil {
		return m.ListByAssigneeFn(ctx, userID)
	}
	return m.Tasks, m.DefaultError
}
