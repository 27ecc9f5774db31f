package middleware

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
)

// APIKeyHeader is the request header carrying the API key.
const APIKeyHeader = "x-api-key"

var (
	errMissingAPIKey = fmt.Errorf("%w: missing API key", domain.ErrUnauthorized)
	errInvalidAPIKey = fmt.Errorf("%w: invalid API key", domain.ErrUnauthorized)
)

// AuthMiddleware guards routes with a shared API key.
type AuthMiddleware struct {
	apiKey []byte
	logger *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware. An empty key disables the check.
func NewAuthMiddleware(apiKey string, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		apiKey: []byte(apiKey),
		logger: logger.With(slog.String("component", "auth_middleware")),
	}
}

// Enabled reports whether requests are checked for an API key.
func (m *AuthMiddleware) Enabled() bool {
	return len(m.apiKey) > 0
}

// Authenticate rejects requests whose x-api-key header is missing or does
// not match the configured key.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		provided := r.Header.Get(APIKeyHeader)
		if provided == "" {
			m.reject(w, r, "API key is required. Include x-api-key header.", errMissingAPIKey)
			return
		}

		// Wrong keys are logged at WARN; they may be guessing.
		if subtle.ConstantTimeCompare([]byte(provided), m.apiKey) != 1 {
			m.reject(w, r, "Invalid API key", errInvalidAPIKey, shared.WithElevatedLogLevel())
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) reject(
	w http.ResponseWriter,
	r *http.Request,
	message string,
	err error,
	opts ...shared.ResponseOption,
) {
	if logger.FromContext(r.Context()) == nil {
		r = r.WithContext(logger.WithLogger(r.Context(), m.logger))
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Unauthorized", message, err, opts...)
}
