package domain

import (
	"strings"
	"time"
)

// TaskStatus represents the progress state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// statusMessage is the validation message used for any unknown status.
const statusMessage = "must be one of: pending, in-progress, completed"

// IsValid reports whether s is one of the known task statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// ParseTaskStatus converts a raw string into a TaskStatus.
// Returns a validation error wrapping ErrInvalidTaskStatus if the value is unknown.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	status := TaskStatus(raw)
	if !status.IsValid() {
		return "", NewValidationError("status", statusMessage, ErrInvalidTaskStatus)
	}
	return status, nil
}

// UserRef is the subset of a user embedded in a task when its assignee is resolved.
// Name and Email are empty when only the reference is known.
type UserRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Task is a unit of work that can be tracked through its status and
// optionally assigned to a user.
//
// Completed is derived from Status and is true exactly when Status is
// TaskStatusCompleted.
type Task struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	AssignedTo  *UserRef   `json:"assignedTo"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewTask creates a new Task with trimmed text fields and a derived
// completion flag. An empty status defaults to TaskStatusPending.
// The ID is assigned by the store. Returns an error if validation fails.
func NewTask(title, description string, status TaskStatus, dueDate *time.Time) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}

	now := time.Now().UTC()
	task := &Task{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Status:      status,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	task.SyncCompleted()

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// SyncCompleted sets Completed from Status.
func (t *Task) SyncCompleted() {
	t.Completed = t.Status == TaskStatusCompleted
}

// AssigneeID returns the referenced user ID, or an empty string when unassigned.
func (t *Task) AssigneeID() string {
	if t.AssignedTo == nil {
		return ""
	}
	return t.AssignedTo.ID
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "is required", ErrValidation)
	}

	if !t.Status.IsValid() {
		return NewValidationError("status", statusMessage, ErrInvalidTaskStatus)
	}

	if t.Completed != (t.Status == TaskStatusCompleted) {
		return NewValidationError("completed", "must match status", ErrValidation)
	}

	if t.AssignedTo != nil && !IsValidID(t.AssignedTo.ID) {
		return NewValidationError("", "Please provide a valid user ID", ErrInvalidID)
	}

	return nil
}

// TaskUpdate describes a partial change to a task. Nil fields are left untouched.
//
// AssignedTo pointing at an empty string removes the assignment, and
// ClearDueDate removes the due date.
type TaskUpdate struct {
	Title        *string
	Description  *string
	Status       *TaskStatus
	Completed    *bool
	DueDate      *time.Time
	ClearDueDate bool
	AssignedTo   *string
}

// IsEmpty reports whether the update changes nothing.
func (u *TaskUpdate) IsEmpty() bool {
	return u.Title == nil &&
		u.Description == nil &&
		u.Status == nil &&
		u.Completed == nil &&
		u.DueDate == nil &&
		!u.ClearDueDate &&
		u.AssignedTo == nil
}

// Normalize trims text fields, validates the values present and reconciles
// Status with Completed so the stored task keeps Completed derived from Status.
//
// When only Completed is given, Status becomes completed or pending. When both
// are given they must agree.
func (u *TaskUpdate) Normalize() error {
	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		if title == "" {
			return NewValidationError("title", "must be a non-empty string", ErrValidation)
		}
		u.Title = &title
	}

	if u.Description != nil {
		description := strings.TrimSpace(*u.Description)
		u.Description = &description
	}

	if u.AssignedTo != nil && *u.AssignedTo != "" && !IsValidID(*u.AssignedTo) {
		return NewValidationError("", "Please provide a valid user ID", ErrInvalidID)
	}

	if u.DueDate != nil && u.ClearDueDate {
		return NewValidationError("dueDate", "cannot be both set and cleared", ErrValidation)
	}

	switch {
	case u.Status != nil:
		if !u.Status.IsValid() {
			return NewValidationError("status", statusMessage, ErrInvalidTaskStatus)
		}
		completed := *u.Status == TaskStatusCompleted
		if u.Completed != nil && *u.Completed != completed {
			return NewValidationError("completed", "must match status", ErrValidation)
		}
		u.Completed = &completed
	case u.Completed != nil:
		status := TaskStatusPending
		if *u.Completed {
			status = TaskStatusCompleted
		}
		u.Status = &status
	}

	return nil
}
