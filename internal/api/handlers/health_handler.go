package handlers

import (
	"net/http"

	"github.com/isdelr/lexilearn-be/internal/monitoring"
)

// StatsSource provides the latest resource usage sample.
type StatsSource interface {
	Snapshot() monitoring.HostStats
}

// HealthHandler reports liveness and resource usage.
type HealthHandler struct {
	stats StatsSource
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(stats StatsSource) *HealthHandler {
	return &HealthHandler{stats: stats}
}

// Home returns the API banner.
func (h *HealthHandler) Home(w http.ResponseWriter, r *http.Request) {
	respondMessage(w, http.StatusOK, "Dyslexia Learning System API")
}

// Health returns the latest stats sample.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"stats":  h.stats.Snapshot(),
	})
}
