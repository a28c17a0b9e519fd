package appErrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDetails_DoesNotMutateSentinel(t *testing.T) {
	withDetails := ErrValidationFailed.WithDetails(map[string]string{"email": "is required"})

	assert.NotNil(t, withDetails.Details)
	// Сентинел остается чистым для следующих запросов.
	assert.Nil(t, ErrValidationFailed.Details)
	assert.Equal(t, ErrValidationFailed.Code, withDetails.Code)
}

func TestMarshalJSON_HidesInternals(t *testing.T) {
	wrapped := Wrap(errors.New("connection refused"), CodeInternalError, "Internal server error", http.StatusInternalServerError)

	raw, err := json.Marshal(wrapped)
	require.NoError(t, err)

	body := string(raw)
	assert.Contains(t, body, "INTERNAL_ERROR")
	assert.NotContains(t, body, "connection refused")
	assert.NotContains(t, body, "HTTPCode")
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	wrapped := Wrap(cause, CodeInternalError, "boom", http.StatusInternalServerError)

	assert.ErrorIs(t, wrapped, cause)
}
