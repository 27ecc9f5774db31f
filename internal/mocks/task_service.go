package mocks

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// Custom behavior functions
	ListTasksFn          func(ctx context.Context) ([]*domain.Task, error)
	GetTaskFn            func(ctx context.Context, id string) (*domain.Task, error)
	CreateTaskFn         func(ctx context.Context, input service.TaskInput) (*domain.Task, error)
	ReplaceTaskFn        func(ctx context.Context, id string, input service.TaskInput) (*domain.Task, error)
	PatchTaskFn          func(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error)
	DeleteTaskFn         func(ctx context.Context, id string) error
	CompleteTaskFn       func(ctx context.Context, id string) (*domain.Task, error)
	UpdateProgressFn     func(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)
	ListTasksByStatusFn  func(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)
	SearchTasksByTitleFn func(ctx context.Context, query string) ([]*domain.Task, error)
	AssignTaskFn         func(ctx context.Context, taskID, userID string) (*domain.Task, error)
	ListTasksForUserFn   func(ctx context.Context, userID string) ([]*domain.Task, error)

	// Default return values
	Task         *domain.Task
	Tasks        []*domain.Task
	DefaultError error
}

var _ service.TaskService = (*MockTaskService)(nil)

// ListTasks implements the TaskService.ListTasks method
func (m *MockTaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return m.Tasks, m.DefaultError
}

// GetTask implements the TaskService.GetTask method
func (m *MockTaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return m.Task, m.DefaultError
}

// CreateTask implements the TaskService.CreateTask method
func (m *MockTaskService) CreateTask(ctx context.Context, input service.TaskInput) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, input)
	}
	return m.Task, m.DefaultError
}

// ReplaceTask implements the TaskService.ReplaceTask method
func (m *MockTaskService) ReplaceTask(ctx context.Context, id string, input service.TaskInput) (*domain.Task, error) {
	if m.ReplaceTaskFn != nil {
		return m.ReplaceTaskFn(ctx, id, input)
	}
	return m.Task, m.DefaultError
}

// PatchTask implements the TaskService.PatchTask method
func (m *MockTaskService) PatchTask(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error) {
	if m.PatchTaskFn != nil {
		return m.PatchTaskFn(ctx, id, update)
	}
	return m.Task, m.DefaultError
}

// DeleteTask implements the TaskService.DeleteTask method
func (m *MockTaskService) DeleteTask(ctx context.Context, id string) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return m.DefaultError
}

// CompleteTask implements the TaskService.CompleteTask method
func (m *MockTaskService) CompleteTask(ctx context.Context, id string) (*domain.Task, error) {
	if m.CompleteTaskFn != nil {
		return m.CompleteTaskFn(ctx, id)
	}
	return m.Task, m.DefaultError
}

// UpdateProgress implements the TaskService.UpdateProgress method
func (m *MockTaskService) UpdateProgress(
	ctx context.Context,
	id string,
	status domain.TaskStatus,
) (*domain.Task, error) {
	if m.UpdateProgressFn != nil {
		return m.UpdateProgressFn(ctx, id, status)
	}
	return m.Task, m.DefaultError
}

// ListTasksByStatus implements the TaskService.ListTasksByStatus method
func (m *MockTaskService) ListTasksByStatus(
	ctx context.Context,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	if m.ListTasksByStatusFn != nil {
		return m.ListTasksByStatusFn(ctx, status)
	}
	return m.Tasks, m.DefaultError
}

// SearchTasksByTitle implements the TaskService.SearchTasksByTitle method
func (m *MockTaskService) SearchTasksByTitle(ctx context.Context, query string) ([]*domain.Task, error) {
	if m.SearchTasksByTitleFn != nil {
		return m.SearchTasksByTitleFn(ctx, query)
	}
	return m.Tasks, m.DefaultError
}

// AssignTask implements the TaskService.AssignTask method
func (m *MockTaskService) AssignTask(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	if m.AssignTaskFn != nil {
		return m.AssignTaskFn(ctx, taskID, userID)
	}
	return m.Task, m.DefaultError
}

// ListTasksForUser implements the TaskService.ListTasksForUser method
func (m *MockTaskService) ListTasksForUser(ctx context.Context, userID string) ([]*domain.Task, error) {
	if m.ListTasksForUserFn != nil {
		return m.ListTasksForUserFn(ctx, userID)
	}
	return m.Tasks, m.DefaultError
}
