package events

import (
	"context"
	"log/slog"

	"github.com/phrazzld/task-api/internal/platform/logger"
)

// AuditLogHandler writes one structured log record per task event.
type AuditLogHandler struct {
	logger *slog.Logger
}

// NewAuditLogHandler creates an AuditLogHandler.
// If logger is nil, a default logger will be used.
func NewAuditLogHandler(logger *slog.Logger) *AuditLogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogHandler{logger: logger.With("component", "audit")}
}

// HandleEvent logs the event through the request-scoped logger when ctx
// carries one, so the record shares the request's trace ID.
func (h *AuditLogHandler) HandleEvent(ctx context.Context, event *TaskEvent) error {
	log := h.logger
	if requestLogger := logger.FromContext(ctx); requestLogger != nil {
		log = requestLogger.With("component", "audit")
	}

	log.LogAttrs(ctx, slog.LevelInfo, "task event",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", string(event.Type)),
		slog.String("task_id", event.TaskID),
		slog.Time("occurred_at", event.OccurredAt))
	return nil
}
