package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	t.Run("generates a trace ID", func(t *testing.T) {
		var traceID string
		var hasLogger bool
		handler := TraceMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID = shared.GetTraceID(r.Context())
			hasLogger = logger.FromContext(r.Context()) != nil
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		_, err := uuid.Parse(traceID)
		require.NoError(t, err)
		assert.True(t, hasLogger, "request logger should be stored in the context")
		assert.Equal(t, traceID, rr.Header().Get(TraceIDHeader))
	})

	t.Run("keeps the caller's request ID", func(t *testing.T) {
		var traceID string
		handler := TraceMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID = shared.GetTraceID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-Id", "upstream-id")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "upstream-id", traceID)
		assert.Equal(t, "upstream-id", rr.Header().Get(TraceIDHeader))
	})

	t.Run("replaces an oversized request ID", func(t *testing.T) {
		handler := TraceMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(TraceIDHeader, strings.Repeat("a", 129))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		_, err := uuid.Parse(rr.Header().Get(TraceIDHeader))
		assert.NoError(t, err)
	})

	t.Run("logs with the trace ID", func(t *testing.T) {
		base, buf := logger.GetTestLogger(t)

		handler := TraceMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.FromContext(r.Context()).Info("inside handler")
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

		entries, err := buf.GetLogEntries()
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		for _, entry := range entries {
			assert.NotEmpty(t, entry["trace_id"])
		}
	})
}
