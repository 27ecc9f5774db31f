package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
)

// databaseCheckTimeout bounds a database health check.
const databaseCheckTimeout = 5 * time.Second

// DatabasePinger reports whether the database can be reached.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and database readiness checks.
type HealthHandler struct {
	db     DatabasePinger
	logger *slog.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db DatabasePinger, logger *slog.Logger) *HealthHandler {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil for HealthHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &HealthHandler{
		db:     db,
		logger: logger.With(slog.String("component", "health_handler")),
	}
}

// Health handles GET /health requests. It never touches the database.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// DatabaseHealth handles GET /health/database requests
func (h *HealthHandler) DatabaseHealth(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ctx, cancel := context.WithTimeout(r.Context(), databaseCheckTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		log.Warn("database health check failed", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusServiceUnavailable,
			LabelUnavailable, "Database is not reachable")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, map[string]string{"database": "connected"})
}
