package shared

import (
	"context"

	"github.com/google/uuid"
)

// Key type for context values
type ContextKey string

// Context keys for various values
const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// ErrorDetailKey marks requests whose error responses may carry a
	// redacted detail field.
	ErrorDetailKey ContextKey = "errorDetail"
)

// SetTraceID adds a new random trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, uuid.NewString())
}

// WithTraceID adds the given trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithErrorDetail returns a copy of ctx that allows error responses to
// include redacted error details.
func WithErrorDetail(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, ErrorDetailKey, enabled)
}

// ErrorDetailEnabled reports whether error details may be exposed for this request.
func ErrorDetailEnabled(ctx context.Context) bool {
	enabled, _ := ctx.Value(ErrorDetailKey).(bool)
	return enabled
}
