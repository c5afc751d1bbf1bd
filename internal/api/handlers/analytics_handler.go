package handlers

import (
	"errors"
	"net/http"

	"github.com/isdelr/lexilearn-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AnalyticsHandler handles performance recording and analytics reports.
type AnalyticsHandler struct {
	service services.PerformanceServiceProvider
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(service services.PerformanceServiceProvider) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// PerformancePayload defines the structure for recording an activity.
type PerformancePayload struct {
	ActivityType string         `json:"activity_type"`
	Metrics      map[string]any `json:"metrics"`
}

// RecordPerformance appends an activity to the caller's ledger.
func (h *AnalyticsHandler) RecordPerformance(identityID string, w http.ResponseWriter, r *http.Request) {
	var payload PerformancePayload
	if err := decodeBody(r, &payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "activity_type and metrics are required")
		return
	}

	if err := h.service.Record(r.Context(), identityID, payload.ActivityType, payload.Metrics); err != nil {
		if errors.Is(err, services.ErrMetricOutOfRange) {
			respondMessage(w, http.StatusBadRequest, "Metric values are out of range")
			return
		}
		if errors.Is(err, services.ErrInvalidInput) {
			respondMessage(w, http.StatusBadRequest, "activity_type and metrics are required")
			return
		}
		log.Error().Err(err).Str("user_id", identityID).Msg("Failed to record performance")
		respondError(w, err, "")
		return
	}
	respondMessage(w, http.StatusCreated, "Performance recorded successfully")
}

// PersonalizedReport returns descriptive statistics for the caller.
func (h *AnalyticsHandler) PersonalizedReport(identityID string, w http.ResponseWriter, r *http.Request) {
	report, err := h.service.PersonalizedReport(r.Context(), identityID)
	if err != nil {
		respondError(w, err, "No performance data available for this user")
		return
	}
	respondJSON(w, http.StatusOK, map[string]services.Report{"report": report})
}

// OverallReport returns descriptive statistics across all learners.
func (h *AnalyticsHandler) OverallReport(_ string, w http.ResponseWriter, r *http.Request) {
	report, err := h.service.OverallReport(r.Context())
	if err != nil {
		respondError(w, err, "No user performance data available")
		return
	}
	respondJSON(w, http.StatusOK, map[string]services.Report{"overall_report": report})
}

// ActivityAnalytics returns dashboard metrics. An empty ledger is reported
// with a 200 and a message rather than a 404.
func (h *AnalyticsHandler) ActivityAnalytics(identityID string, w http.ResponseWriter, r *http.Request) {
	analytics, err := h.service.ActivityAnalytics(r.Context(), identityID)
	if err != nil {
		if errors.Is(err, services.ErrNoData) {
			respondMessage(w, http.StatusOK, "No performance data available")
			return
		}
		log.Error().Err(err).Str("user_id", identityID).Msg("Failed to compute analytics")
		respondError(w, err, "")
		return
	}
	respondJSON(w, http.StatusOK, analytics)
}
