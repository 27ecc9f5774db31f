package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
)

// getPathID extracts an entity ID from the URL path parameters and checks
// its format.
//
// Parameters:
//   - r: The HTTP request
//   - paramName: The name of the path parameter to extract
//   - entity: The entity named in validation messages, e.g. "task"
//
// Returns:
//   - (id, nil): The ID if present and well formed
//   - ("", error): A validation error if the parameter is missing or malformed
func getPathID(r *http.Request, paramName, entity string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, paramName))
	if err := domain.ValidateID(entity, id); err != nil {
		return "", err
	}
	return id, nil
}

// handlePathID is a composite helper that extracts an ID from the path and
// writes an error response if it is missing or malformed.
//
// Returns:
//   - (id, true): The ID if it was extracted successfully
//   - ("", false): If extraction failed and an error was written
func handlePathID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	entity string,
	log *slog.Logger,
) (string, bool) {
	// Get logger from context if not provided
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	id, err := getPathID(r, paramName, entity)
	if err != nil {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err)
		return "", false
	}

	return id, true
}

// decodeBody decodes the JSON request body into v and writes a 400 response
// if it is malformed.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		HandleDecodeError(w, r, err)
		return false
	}
	return true
}
