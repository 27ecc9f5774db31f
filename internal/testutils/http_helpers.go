package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the response body written by every API route.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Count   *int            `json:"count,omitempty"`
	Query   *string         `json:"query,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	Detail  string          `json:"detail,omitempty"`
	TraceID string          `json:"trace_id,omitempty"`
}

// ServeRequest runs a request through handler and decodes the envelope.
// An empty body sends no body at all. Extra headers are given as name/value pairs.
func ServeRequest(
	t *testing.T,
	handler http.Handler,
	method, target, body string,
	headers ...string,
) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	require.Zero(t, len(headers)%2, "headers must be name/value pairs")

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	return rr, DecodeEnvelope(t, rr)
}

// DecodeEnvelope parses the recorded body as a response envelope.
func DecodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env),
		"Failed to unmarshal response envelope: %s", rr.Body.String())
	return env
}

// AssertErrorResponse checks the status code and that the envelope reports
// failure with the expected message.
func AssertErrorResponse(
	t *testing.T,
	rr *httptest.ResponseRecorder,
	env Envelope,
	expectedStatus int,
	expectedMessage string,
) {
	t.Helper()

	assert.Equal(t, expectedStatus, rr.Code, "Unexpected status code, body: %s", rr.Body.String())
	assert.False(t, env.Success, "Error responses must report success=false")
	assert.Equal(t, expectedMessage, env.Message)
	assert.Empty(t, env.Data, "Error responses must not carry data")
}

// AssertDataResponse checks the status code, decodes data into target and
// returns the envelope for further assertions.
func AssertDataResponse(
	t *testing.T,
	rr *httptest.ResponseRecorder,
	env Envelope,
	expectedStatus int,
	target interface{},
) {
	t.Helper()

	require.Equal(t, expectedStatus, rr.Code, "Unexpected status code, body: %s", rr.Body.String())
	assert.True(t, env.Success, "Success responses must report success=true")
	if target != nil {
		require.NoError(t, json.Unmarshal(env.Data, target), "Failed to decode data: %s", env.Data)
	}
}
