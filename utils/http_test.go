package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	t.Run("successful write", func(t *testing.T) {
		w := httptest.NewRecorder()
		data := map[string]string{"message": "test"}

		err := WriteJSON(w, http.StatusOK, data)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response map[string]string
		err = json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, "test", response["message"])
	})

	t.Run("nil data", func(t *testing.T) {
		w := httptest.NewRecorder()

		err := WriteJSON(w, http.StatusNoContent, nil)
		require.NoError(t, err)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestWriteOK(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteOK(w, map[string]string{"result": "success"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.Code)

	var response SuccessResponse
	err = json.NewDecoder(w.Body).Decode(&response)
	require.NoError(t, err)

	dataMap := response.Data.(map[string]any)
	assert.Equal(t, "success", dataMap["result"])
}

func TestWriteBadRequest(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteBadRequest(w, "invalid page", map[string]any{"page": "abc"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ErrorResponse
	err = json.NewDecoder(w.Body).Decode(&response)
	require.NoError(t, err)
	assert.Equal(t, "bad_request", response.Error)
	assert.Equal(t, "invalid page", response.Message)
	assert.Equal(t, "abc", response.Details["page"])
}

func TestWriteNotFound(t *testing.T) {
	t.Run("default message", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, WriteNotFound(w, ""))

		var response ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not_found", response.Error)
		assert.Equal(t, "Resource not found", response.Message)
	})

	t.Run("custom message", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, WriteNotFound(w, "no such route"))

		var response ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "no such route", response.Message)
	})
}

func TestWriteServiceUnavailable(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteServiceUnavailable(w, map[string]string{"status": "unhealthy"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response SuccessResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "unhealthy", response.Data.(map[string]any)["status"])
}
