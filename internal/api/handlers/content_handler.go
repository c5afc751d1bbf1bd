package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/lexilearn-be/internal/services"
)

// ContentHandler handles HTTP requests for the learning catalog.
type ContentHandler struct {
	service services.ContentServiceProvider
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(service services.ContentServiceProvider) *ContentHandler {
	return &ContentHandler{service: service}
}

// GetAll lists every catalog item with its id.
func (h *ContentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.List())
}

// Get returns a single catalog item.
func (h *ContentHandler) Get(_ string, w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err, "Content not found")
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// Recommendations returns a personalized sample from the catalog.
func (h *ContentHandler) Recommendations(identityID string, w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{
		"recommendations": h.service.Recommend(r.Context(), identityID),
	})
}
