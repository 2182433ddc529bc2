package pkg

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Error)
}

func TestErrorMapsSentinelsToStatusCodes(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrAlreadyExists, http.StatusConflict},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrInternal, http.StatusInternalServerError},
		{fmt.Errorf("anything else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		Error(rec, tt.err)
		assert.Equal(t, tt.want, rec.Code, "error %v", tt.err)

		var resp APIResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.NotEmpty(t, resp.Error)
	}
}

func TestErrorUnwrapsChain(t *testing.T) {
	// %w ile sarılmış sentinel de doğru status'a eşlenir
	wrapped := fmt.Errorf("%w: production not found", ErrNotFound)

	rec := httptest.NewRecorder()
	Error(rec, wrapped)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "production not found")
}

func TestErrorWithMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrorWithMessage(rec, http.StatusTeapot, "custom message")

	assert.Equal(t, http.StatusTeapot, rec.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "custom message", resp.Error)
}
