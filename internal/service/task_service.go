package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskInput carries the fields of a create or full update request.
// Pointer fields are optional; nil leaves the stored value unchanged on update.
// ClearDueDate removes the stored due date on update.
type TaskInput struct {
	Title        string
	Description  *string
	Status       *domain.TaskStatus
	Completed    *bool
	DueDate      *time.Time
	ClearDueDate bool
	AssignedTo   *string
}

// TaskService provides task management operations.
type TaskService interface {
	// ListTasks returns every task, newest first.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// GetTask retrieves a task by its ID.
	GetTask(ctx context.Context, id string) (*domain.Task, error)

	// CreateTask validates input and stores a new task.
	CreateTask(ctx context.Context, input TaskInput) (*domain.Task, error)

	// ReplaceTask validates input like CreateTask and writes the given fields
	// to an existing task.
	ReplaceTask(ctx context.Context, id string, input TaskInput) (*domain.Task, error)

	// PatchTask applies a partial update to an existing task.
	PatchTask(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id string) error

	// CompleteTask marks a task as completed.
	CompleteTask(ctx context.Context, id string) (*domain.Task, error)

	// UpdateProgress sets a task's status.
	UpdateProgress(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)

	// ListTasksByStatus returns the tasks with the given status.
	ListTasksByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)

	// SearchTasksByTitle returns the tasks whose title contains query, ignoring case.
	SearchTasksByTitle(ctx context.Context, query string) ([]*domain.Task, error)

	// AssignTask assigns a task to an existing user.
	AssignTask(ctx context.Context, taskID, userID string) (*domain.Task, error)

	// ListTasksForUser returns the tasks assigned to a user.
	ListTasksForUser(ctx context.Context, userID string) ([]*domain.Task, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore store.TaskStore
	userStore store.UserStore
	emitter   events.EventEmitter
	logger    *slog.Logger
}

// TaskServiceOption configures optional TaskService behavior.
type TaskServiceOption func(*taskServiceImpl)

// WithEventEmitter publishes a TaskEvent after every successful write.
// Emission failures are logged and never fail the operation.
func WithEventEmitter(emitter events.EventEmitter) TaskServiceOption {
	return func(s *taskServiceImpl) {
		s.emitter = emitter
	}
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskStore store.TaskStore,
	userStore store.UserStore,
	logger *slog.Logger,
	opts ...TaskServiceOption,
) (TaskService, error) {
	var validationErrors []string
	if taskStore == nil {
		validationErrors = append(validationErrors, "taskStore cannot be nil")
	}
	if userStore == nil {
		validationErrors = append(validationErrors, "userStore cannot be nil")
	}
	if len(validationErrors) > 0 {
		return nil, errors.New("invalid task service dependencies: " + strings.Join(validationErrors, ", "))
	}

	if logger == nil {
		logger = slog.Default()
	}

	svc := &taskServiceImpl{
		taskStore: taskStore,
		userStore: userStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}
	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.taskStore.List(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list", err)
	}
	return tasks, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := domain.ValidateID("task", id); err != nil {
		return nil, err
	}

	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get", err, slog.String("task_id", id))
	}
	return task, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, input TaskInput) (*domain.Task, error) {
	status, err := resolveStatus(input.Status, input.Completed)
	if err != nil {
		return nil, err
	}

	description := ""
	if input.Description != nil {
		description = *input.Description
	}

	task, err := domain.NewTask(input.Title, description, status, input.DueDate)
	if err != nil {
		return nil, err
	}

	if input.AssignedTo != nil && *input.AssignedTo != "" {
		task.AssignedTo = &domain.UserRef{ID: *input.AssignedTo}
		if err := task.Validate(); err != nil {
			return nil, err
		}
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, s.fail(ctx, "create", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task created",
		slog.String("task_id", task.ID),
		slog.String("status", string(task.Status)))
	s.emit(ctx, events.TaskCreated, task.ID, task)
	return task, nil
}

// ReplaceTask implements TaskService.ReplaceTask
func (s *taskServiceImpl) ReplaceTask(ctx context.Context, id string, input TaskInput) (*domain.Task, error) {
	if err := domain.ValidateID("task", id); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.NewValidationError("title", "is required", domain.ErrValidation)
	}

	title := input.Title
	update := domain.TaskUpdate{
		Title:        &title,
		Description:  input.Description,
		Status:       input.Status,
		Completed:    input.Completed,
		DueDate:      input.DueDate,
		ClearDueDate: input.ClearDueDate,
		AssignedTo:   input.AssignedTo,
	}

	return s.update(ctx, "replace", id, update)
}

// PatchTask implements TaskService.PatchTask
func (s *taskServiceImpl) PatchTask(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error) {
	if err := domain.ValidateID("task", id); err != nil {
		return nil, err
	}
	return s.update(ctx, "patch", id, update)
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	if err := domain.ValidateID("task", id); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, id); err != nil {
		return s.fail(ctx, "delete", err, slog.String("task_id", id))
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", slog.String("task_id", id))
	s.emit(ctx, events.TaskDeleted, id, nil)
	return nil
}

// CompleteTask implements TaskService.CompleteTask
func (s *taskServiceImpl) CompleteTask(ctx context.Context, id string) (*domain.Task, error) {
	return s.UpdateProgress(ctx, id, domain.TaskStatusCompleted)
}

// UpdateProgress implements TaskService.UpdateProgress
func (s *taskServiceImpl) UpdateProgress(
	ctx context.Context,
	id string,
	status domain.TaskStatus,
) (*domain.Task, error) {
	if err := domain.ValidateID("task", id); err != nil {
		return nil, err
	}

	if !status.IsValid() {
		_, err := domain.ParseTaskStatus(string(status))
		return nil, err
	}

	return s.update(ctx, "update_progress", id, domain.TaskUpdate{Status: &status})
}

// ListTasksByStatus implements TaskService.ListTasksByStatus
func (s *taskServiceImpl) ListTasksByStatus(
	ctx context.Context,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	if !status.IsValid() {
		_, err := domain.ParseTaskStatus(string(status))
		return nil, err
	}

	tasks, err := s.taskStore.ListByStatus(ctx, status)
	if err != nil {
		return nil, s.fail(ctx, "list_by_status", err, slog.String("status", string(status)))
	}
	return tasks, nil
}

// SearchTasksByTitle implements TaskService.SearchTasksByTitle
func (s *taskServiceImpl) SearchTasksByTitle(ctx context.Context, query string) ([]*domain.Task, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewValidationError("", `Query parameter "q" is required`, domain.ErrValidation)
	}

	tasks, err := s.taskStore.SearchByTitle(ctx, query)
	if err != nil {
		return nil, s.fail(ctx, "search_by_title", err)
	}
	return tasks, nil
}

// AssignTask implements TaskService.AssignTask
// The user must exist; it is checked before the task is touched.
func (s *taskServiceImpl) AssignTask(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	if err := domain.ValidateID("task", taskID); err != nil {
		return nil, err
	}
	if err := domain.ValidateID("user", userID); err != nil {
		return nil, err
	}

	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		return nil, s.fail(ctx, "assign", err, slog.String("user_id", userID))
	}

	return s.update(ctx, "assign", taskID, domain.TaskUpdate{AssignedTo: &userID})
}

// ListTasksForUser implements TaskService.ListTasksForUser
func (s *taskServiceImpl) ListTasksForUser(ctx context.Context, userID string) ([]*domain.Task, error) {
	if err := domain.ValidateID("user", userID); err != nil {
		return nil, err
	}

	tasks, err := s.taskStore.ListByAssignee(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "list_for_user", err, slog.String("user_id", userID))
	}
	return tasks, nil
}

func (s *taskServiceImpl) update(
	ctx context.Context,
	op string,
	id string,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	if err := update.Normalize(); err != nil {
		return nil, err
	}

	task, err := s.taskStore.Update(ctx, id, update)
	if err != nil {
		return nil, s.fail(ctx, op, err, slog.String("task_id", id))
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task updated",
		slog.String("operation", op),
		slog.String("task_id", task.ID),
		slog.String("status", string(task.Status)))
	s.emit(ctx, eventTypeFor(op, task), task.ID, task)
	return task, nil
}

// eventTypeFor classifies a successful update for event subscribers.
func eventTypeFor(op string, task *domain.Task) events.Type {
	switch {
	case op == "assign":
		return events.TaskAssigned
	case op == "update_progress" && task.Status == domain.TaskStatusCompleted:
		return events.TaskCompleted
	default:
		return events.TaskUpdated
	}
}

func (s *taskServiceImpl) emit(ctx context.Context, eventType events.Type, taskID string, payload interface{}) {
	if s.emitter == nil {
		return
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	event, err := events.NewTaskEvent(eventType, taskID, payload)
	if err != nil {
		log.Warn("failed to build task event",
			slog.String("event_type", string(eventType)),
			slog.String("error", err.Error()))
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("task event handler failed",
			slog.String("event_type", string(eventType)),
			slog.String("error", redact.Error(err)))
	}
}

// fail logs err at a level matching its kind and wraps it for the caller.
func (s *taskServiceImpl) fail(ctx context.Context, op string, err error, attrs ...any) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(attrs...)

	switch {
	case store.IsNotFoundError(err):
		log.Debug("task operation target not found", slog.String("operation", op))
	case store.IsUnavailableError(err):
		log.Warn("database unavailable", slog.String("operation", op))
	default:
		log.Error("task operation failed",
			slog.String("operation", op),
			slog.String("error", redact.Error(err)))
	}

	return newTaskError(op, err)
}

// resolveStatus derives the status to store from the optional status and
// completed fields of a request. They must agree when both are present.
func resolveStatus(status *domain.TaskStatus, completed *bool) (domain.TaskStatus, error) {
	update := domain.TaskUpdate{Status: status, Completed: completed}
	if err := update.Normalize(); err != nil {
		return "", err
	}
	if update.Status == nil {
		return domain.TaskStatusPending, nil
	}
	return *update.Status, nil
}
