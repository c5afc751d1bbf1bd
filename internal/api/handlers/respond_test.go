package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/isdelr/lexilearn-be/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestRespondError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "invalid input", err: fmt.Errorf("password too long: %w", services.ErrInvalidInput), status: http.StatusBadRequest},
		{name: "conflict", err: services.ErrConflict, status: http.StatusConflict},
		{name: "not found", err: services.ErrNotFound, status: http.StatusNotFound},
		{name: "no data", err: services.ErrNoData, status: http.StatusNotFound},
		{name: "unexpected", err: errors.New("disk on fire"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tt.err, "fallback")

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var body map[string]string
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestRespondError_InvalidInputHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, fmt.Errorf("password too long: %w", services.ErrInvalidInput), "")

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid request", body["message"])
}

func TestRespondJSON_EncodeFailureIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusOK, map[string]float64{"mean": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["message"])
}
