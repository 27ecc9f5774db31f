package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type progressBody struct {
	Status string `json:"status"`
}

func TestDecodeJSON(t *testing.T) {
	t.Run("populates target", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"status":"completed"}`))
		var body progressBody

		require.NoError(t, DecodeJSON(req, &body))
		assert.Equal(t, "completed", body.Status)
	})

	t.Run("empty body leaves target untouched", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/", nil)
		body := progressBody{Status: "pending"}

		require.NoError(t, DecodeJSON(req, &body))
		assert.Equal(t, "pending", body.Status)
	})

	t.Run("syntax error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"status":`))

		var syntaxErr *json.SyntaxError
		err := DecodeJSON(req, &progressBody{})
		assert.True(t, errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF), "got %v", err)
	})

	t.Run("wrong type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"status":7}`))

		var typeErr *json.UnmarshalTypeError
		require.ErrorAs(t, DecodeJSON(req, &progressBody{}), &typeErr)
		assert.Equal(t, "status", typeErr.Field)
	})

	t.Run("body larger than the limit is cut off", func(t *testing.T) {
		huge := `{"status":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(huge))

		assert.Error(t, DecodeJSON(req, &progressBody{}))
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset by peer")
}

func TestDecodeJSONWithReadError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", failingReader{})

	err := DecodeJSON(req, &progressBody{})

	assert.EqualError(t, err, "connection reset by peer")
}

// selfValidating checks itself instead of relying on struct tags.
type selfValidating struct {
	Title string `validate:"required"`
}

func (s *selfValidating) Validate() error {
	if s.Title == "reject" {
		return errors.New("rejected")
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	t.Run("uses Validate method when present", func(t *testing.T) {
		assert.NoError(t, ValidateRequest(&selfValidating{}))
		assert.EqualError(t, ValidateRequest(&selfValidating{Title: "reject"}), "rejected")
	})

	t.Run("falls back to struct tags", func(t *testing.T) {
		type userBody struct {
			Name string `json:"name" validate:"required"`
		}

		assert.NoError(t, ValidateRequest(&userBody{Name: "Ada"}))
		assert.Error(t, ValidateRequest(&userBody{}))
	})
}

func TestValidateRequestReportsJSONFieldNames(t *testing.T) {
	req := &struct {
		Email string `json:"email" validate:"required,email"`
	}{Email: "nope"}

	err := ValidateRequest(req)

	var validationErrs validator.ValidationErrors
	if assert.ErrorAs(t, err, &validationErrs) {
		assert.Equal(t, "email", validationErrs[0].Field())
		assert.Equal(t, "email", validationErrs[0].Tag())
	}
}
