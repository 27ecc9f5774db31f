package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/platform/mongodb"
)

// EnsureDatabase makes sure a database session is available before the
// request reaches a data handler. Connecting happens at most once across
// concurrent requests; until it succeeds, requests get 503.
func EnsureDatabase(sessions mongodb.SessionSource) func(http.Handler) http.Handler {
	if sessions == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("sessions cannot be nil for EnsureDatabase")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := sessions.Acquire(r.Context()); err != nil {
				logger.FromContextOrDefault(r.Context(), nil).Warn("database unavailable for request",
					slog.String("path", r.URL.Path))
				shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable,
					"Service unavailable", "Service temporarily unavailable", err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
