package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/campusevents/backend/internal/model"
)

// CategoryLister supplies active categories for the reference endpoints.
type CategoryLister interface {
	ListActive(ctx context.Context) ([]model.Category, error)
}

// VenueLister supplies active venues for the reference endpoints.
type VenueLister interface {
	ListActive(ctx context.Context) ([]model.Venue, error)
}

// ReferenceHandler serves the read-only category and venue listings.
type ReferenceHandler struct {
	categories CategoryLister
	venues     VenueLister
}

// NewReferenceHandler constructs a ReferenceHandler.
func NewReferenceHandler(categories CategoryLister, venues VenueLister) *ReferenceHandler {
	return &ReferenceHandler{categories: categories, venues: venues}
}

// Categories handles GET /api/categories
// Only active categories are returned.
func (h *ReferenceHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.ListActive(r.Context())
	if err != nil {
		log.Printf("list categories: %v", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "failed to list categories")
		return
	}
	if cats == nil {
		cats = []model.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "categories": cats})
}

// Venues handles GET /api/venues
// Only active venues are returned.
func (h *ReferenceHandler) Venues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.venues.ListActive(r.Context())
	if err != nil {
		log.Printf("list venues: %v", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "failed to list venues")
		return
	}
	if venues == nil {
		venues = []model.Venue{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "venues": venues})
}
