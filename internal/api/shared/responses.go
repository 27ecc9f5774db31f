package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
)

// Envelope is the body of every JSON response.
//
// Success responses carry Data and optionally Count, Query or Message.
// Error responses carry Error, a short label such as "Validation error",
// and Message, the human readable reason.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Query   *string     `json:"query,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Detail  string      `json:"detail,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
}

// EnvelopeOption adds optional fields to a success envelope.
type EnvelopeOption func(*Envelope)

// WithCount sets the count field.
func WithCount(n int) EnvelopeOption {
	return func(e *Envelope) {
		e.Count = &n
	}
}

// WithQuery echoes the search query.
func WithQuery(q string) EnvelopeOption {
	return func(e *Envelope) {
		e.Query = &q
	}
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

// responseOptions holds configurable options for error responses.
type responseOptions struct {
	elevateLogLevel bool
}

// WithElevatedLogLevel returns a ResponseOption that raises 4xx errors to WARN level
// instead of the default DEBUG level. Use for important operational issues like
// repeated auth failures.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), nil).Error("failed to encode JSON response",
			"error", err)
	}
}

// RespondWithData writes a success envelope around data.
func RespondWithData(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	data interface{},
	opts ...EnvelopeOption,
) {
	envelope := Envelope{Success: true, Data: data}
	for _, opt := range opts {
		opt(&envelope)
	}
	RespondWithJSON(w, r, status, envelope)
}

// RespondWithMessage writes a success envelope carrying only a message.
func RespondWithMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithJSON(w, r, status, Envelope{Success: true, Message: message})
}

// RespondWithError writes a JSON error envelope with the given status code,
// label and message. It also sets the TraceID from the request context if available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, label, message string) {
	traceID := GetTraceID(r.Context())

	logger.FromContextOrDefault(r.Context(), nil).Debug("sending error response",
		"status_code", status,
		"message", message,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, Envelope{
		Success: false,
		Error:   label,
		Message: message,
		TraceID: traceID,
	})
}

// RespondWithErrorAndLog writes a JSON error envelope and also logs the detailed error.
// The raw error never reaches the client. When the request allows error detail,
// its redacted form is added as the detail field.
//
// Log level strategy:
// - 5xx errors: Always logged at ERROR level
// - 503 Service Unavailable: Logged at WARN level (operational concern)
// - 429 Too Many Requests: Logged at WARN level
// - 4xx errors: By default logged at DEBUG level
//
// For special cases where 4xx errors need higher visibility (e.g., repeated auth failures),
// use the WithElevatedLogLevel() option to elevate to WARN level.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	label string,
	userMessage string,
	err error,
	opts ...ResponseOption,
) {
	traceID := GetTraceID(r.Context())

	envelope := Envelope{
		Success: false,
		Error:   label,
		Message: userMessage,
		TraceID: traceID,
	}

	logAttrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if traceID != "" {
		logAttrs = append(logAttrs, slog.String("trace_id", traceID))
	}

	if err != nil {
		redactedError := redact.Error(err)
		logAttrs = append(logAttrs,
			slog.String("error", redactedError),
			slog.String("error_type", fmt.Sprintf("%T", err)))

		if ErrorDetailEnabled(r.Context()) {
			envelope.Detail = redactedError
		}
	}

	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	logLevel := slog.LevelDebug
	switch {
	case status == http.StatusServiceUnavailable:
		logLevel = slog.LevelWarn
	case status >= http.StatusInternalServerError:
		logLevel = slog.LevelError
	case status == http.StatusTooManyRequests:
		logLevel = slog.LevelWarn
	case responseOpts.elevateLogLevel && status >= http.StatusBadRequest:
		logLevel = slog.LevelWarn
	}

	log := logger.FromContextOrDefault(r.Context(), nil)
	log.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, envelope)
}
