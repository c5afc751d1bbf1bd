package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isdelr/lexilearn-be/internal/services"
	"github.com/rs/zerolog/log"
)

// respondJSON encodes v before writing the status so an encoding failure
// still yields a 500.
func respondJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		status = http.StatusInternalServerError
		body = []byte(`{"message":"Internal server error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"message": msg})
}

// respondError maps service errors onto HTTP statuses. Unknown errors are 500s.
func respondError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		respondMessage(w, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, services.ErrConflict):
		respondMessage(w, http.StatusConflict, "User already exists")
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrNoData):
		respondMessage(w, http.StatusNotFound, fallback)
	default:
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
