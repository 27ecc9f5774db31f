package api

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
)

// Optional records whether a JSON field was present and whether it was null.
// A field missing from the body leaves Set false.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON implements json.Unmarshaler. It is also called for null.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Ptr returns the value when present and not null.
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// TaskRequest is the body of the create, replace and patch task endpoints.
//
// Title is decoded loosely so a non-string title is reported as a validation
// error rather than a decoding failure.
type TaskRequest struct {
	Title       Optional[interface{}] `json:"title"`
	Description Optional[string]      `json:"description"`
	Status      Optional[string]      `json:"status"`
	Completed   Optional[bool]        `json:"completed"`
	DueDate     Optional[string]      `json:"dueDate"`
	AssignedTo  Optional[string]      `json:"assignedTo"`
}

// ProgressRequest is the body of the progress endpoint.
type ProgressRequest struct {
	Status string `json:"status"`
}

// AssignRequest is the body of the assign endpoint.
type AssignRequest struct {
	UserID string `json:"userId"`
}

// CreateUserRequest is the body of the create user endpoint.
type CreateUserRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// dueDateLayouts are the accepted ISO 8601 forms of a due date.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDueDate parses an ISO 8601 date or date-time. Values without an
// offset are read as UTC.
func parseDueDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.NewValidationError(
		"dueDate", "must be a valid ISO 8601 date string", domain.ErrValidation,
	)
}

// title validates the title field. When required, a missing, null or empty
// title is rejected.
func (req *TaskRequest) title(required bool) (*string, error) {
	if !req.Title.Set || req.Title.Null {
		if required {
			return nil, domain.NewValidationError("title", "is required", domain.ErrValidation)
		}
		if req.Title.Null {
			return nil, domain.NewValidationError("title", "must be a non-empty string", domain.ErrValidation)
		}
		return nil, nil
	}

	title, ok := req.Title.Value.(string)
	if required && ok && title == "" {
		return nil, domain.NewValidationError("title", "is required", domain.ErrValidation)
	}
	if !ok || strings.TrimSpace(title) == "" {
		return nil, domain.NewValidationError("title", "must be a non-empty string", domain.ErrValidation)
	}
	return &title, nil
}

// status validates the status field when it carries a value.
func (req *TaskRequest) status() (*domain.TaskStatus, error) {
	raw := req.Status.Ptr()
	if raw == nil || *raw == "" {
		return nil, nil
	}
	status, err := domain.ParseTaskStatus(*raw)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// dueDate validates the dueDate field. The second result reports whether the
// request clears the due date with null or an empty string.
func (req *TaskRequest) dueDate() (*time.Time, bool, error) {
	if !req.DueDate.Set {
		return nil, false, nil
	}
	if req.DueDate.Null || req.DueDate.Value == "" {
		return nil, true, nil
	}
	t, err := parseDueDate(req.DueDate.Value)
	if err != nil {
		return nil, false, err
	}
	return &t, false, nil
}

// assignedTo returns the requested assignee. Null or an empty string unassigns.
func (req *TaskRequest) assignedTo() *string {
	if !req.AssignedTo.Set {
		return nil
	}
	id := ""
	if !req.AssignedTo.Null {
		id = strings.TrimSpace(req.AssignedTo.Value)
	}
	return &id
}

// ToTaskInput validates a create or replace request and converts it to
// service input.
func (req *TaskRequest) ToTaskInput() (service.TaskInput, error) {
	title, err := req.title(true)
	if err != nil {
		return service.TaskInput{}, err
	}
	status, err := req.status()
	if err != nil {
		return service.TaskInput{}, err
	}
	dueDate, clearDueDate, err := req.dueDate()
	if err != nil {
		return service.TaskInput{}, err
	}

	return service.TaskInput{
		Title:        *title,
		Description:  req.Description.Ptr(),
		Status:       status,
		Completed:    req.Completed.Ptr(),
		DueDate:      dueDate,
		ClearDueDate: clearDueDate,
		AssignedTo:   req.assignedTo(),
	}, nil
}

// ToTaskUpdate validates a patch request and converts it to a partial update.
func (req *TaskRequest) ToTaskUpdate() (domain.TaskUpdate, error) {
	title, err := req.title(false)
	if err != nil {
		return domain.TaskUpdate{}, err
	}
	if req.Status.Set && (req.Status.Null || req.Status.Value == "") {
		return domain.TaskUpdate{}, domain.NewValidationError(
			"status", "must be one of: pending, in-progress, completed", domain.ErrInvalidTaskStatus,
		)
	}
	status, err := req.status()
	if err != nil {
		return domain.TaskUpdate{}, err
	}
	dueDate, clearDueDate, err := req.dueDate()
	if err != nil {
		return domain.TaskUpdate{}, err
	}

	description := req.Description.Ptr()
	if req.Description.Set && req.Description.Null {
		empty := ""
		description = &empty
	}

	return domain.TaskUpdate{
		Title:        title,
		Description:  description,
		Status:       status,
		Completed:    req.Completed.Ptr(),
		DueDate:      dueDate,
		ClearDueDate: clearDueDate,
		AssignedTo:   req.assignedTo(),
	}, nil
}
