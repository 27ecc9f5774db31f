package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/service"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks requests
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	tasks = nonNil(tasks)
	shared.RespondWithData(w, r, http.StatusOK, tasks, shared.WithCount(len(tasks)))
}

// GetTask handles GET /tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", "task", log)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, task)
}

// CreateTask handles POST /tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req TaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input, err := req.ToTaskInput()
	if err != nil {
		log.Debug("invalid create task request", slog.String("error", err.Error()))
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), input)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("task created", slog.String("task_id", task.ID))
	shared.RespondWithData(w, r, http.StatusCreated, task)
}

// ReplaceTask handles PUT /tasks/{id} requests
// The body is validated like a create request.
func (h *TaskHandler) ReplaceTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", "task", log)
	if !ok {
		return
	}

	var req TaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input, err := req.ToTaskInput()
	if err != nil {
		log.Debug("invalid replace task request", slog.String("error", err.Error()))
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.taskService.ReplaceTask(r.Context(), id, input)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, task)
}

// PatchTask handles PATCH /tasks/{id} requests
// Only the fields present in the body are changed.
func (h *TaskHandler) PatchTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", "task", log)
	if !ok {
		return
	}

	var req TaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	update, err := req.ToTaskUpdate()
	if err != nil {
		log.Debug("invalid patch task request", slog.String("error", err.Error()))
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.taskService.PatchTask(r.Context(), id, update)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{id} requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", "task", log)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Task deleted successfully")
}

// CompleteTask handles PUT /tasks/{id}/complete requests
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id", "task", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	task, err := h.taskService.CompleteTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, task)
}

// UpdateProgress handles PUT /tasks/{id}/progress requests
// The body must carry a known status.
func (h *TaskHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id", "task", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var req ProgressRequest
	if !decodeBody(w, r, &req) {
		return
	}

	status, err := domain.ParseTaskStatus(req.Status)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.taskService.UpdateProgress(r.Context(), id, status)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, task)
}

// AssignTask handles POST /tasks/{id}/assign requests
func (h *TaskHandler) AssignTask(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id", "task", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var req AssignRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := domain.ValidateID("user", req.UserID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.taskService.AssignTask(r.Context(), id, req.UserID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, task)
}

// ListTasksByStatus handles GET /tasks/status/{status} requests
func (h *TaskHandler) ListTasksByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := domain.ParseTaskStatus(chi.URLParam(r, "status"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	tasks, err := h.taskService.ListTasksByStatus(r.Context(), status)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	tasks = nonNil(tasks)
	shared.RespondWithData(w, r, http.StatusOK, tasks, shared.WithCount(len(tasks)))
}

// SearchTasksByTitle handles GET /tasks/search/title?q= requests
// The raw query is echoed back in the response.
func (h *TaskHandler) SearchTasksByTitle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	tasks, err := h.taskService.SearchTasksByTitle(r.Context(), query)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	tasks = nonNil(tasks)
	shared.RespondWithData(w, r, http.StatusOK, tasks,
		shared.WithCount(len(tasks)),
		shared.WithQuery(query))
}

// ListTasksForUser handles GET /users/{userId}/tasks requests
func (h *TaskHandler) ListTasksForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlePathID(w, r, "userId", "user", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasksForUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	tasks = nonNil(tasks)
	shared.RespondWithData(w, r, http.StatusOK, tasks, shared.WithCount(len(tasks)))
}

// nonNil makes empty results encode as [] rather than null.
func nonNil(tasks []*domain.Task) []*domain.Task {
	if tasks == nil {
		return []*domain.Task{}
	}
	return tasks
}
