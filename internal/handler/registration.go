package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusevents/backend/internal/model"
	"github.com/campusevents/backend/internal/repository"
	"github.com/campusevents/backend/internal/service"
)

// RegistrationHandler holds the HTTP handlers for event registration.
type RegistrationHandler struct {
	svc *service.RegistrationService
}

// NewRegistrationHandler constructs a RegistrationHandler.
func NewRegistrationHandler(svc *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

type registrationResponse struct {
	Success      bool                 `json:"success"`
	Registration *model.Registration  `json:"registration,omitempty"`
	Waitlist     *model.WaitlistEntry `json:"waitlist,omitempty"`
}

// Register handles POST /api/events/{id}/register
// Books a seat, or queues the user when the event is full.
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user := UserFromContext(r.Context())

	reg, entry, err := h.svc.Register(r.Context(), id, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, codeNotFound, "event not found")
		case errors.Is(err, repository.ErrAlreadyRegistered):
			writeError(w, http.StatusConflict, codeConflict, "you are already registered for this event")
		case errors.Is(err, repository.ErrEventNotOpen):
			writeError(w, http.StatusConflict, codeConflict, "event is not open for registration")
		default:
			log.Printf("register: %v", err)
			writeError(w, http.StatusInternalServerError, codeInternal, "failed to register")
		}
		return
	}

	writeJSON(w, http.StatusCreated, registrationResponse{
		Success:      true,
		Registration: reg,
		Waitlist:     entry,
	})
}

// Cancel handles DELETE /api/events/{id}/register
// Releases the user's seat or waitlist spot.
func (h *RegistrationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user := UserFromContext(r.Context())

	if err := h.svc.Cancel(r.Context(), id, user.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, codeNotFound, "event not found")
		case errors.Is(err, repository.ErrNotRegistered):
			writeError(w, http.StatusNotFound, codeNotFound, "not registered for this event")
		default:
			log.Printf("cancel registration: %v", err)
			writeError(w, http.StatusInternalServerError, codeInternal, "failed to cancel registration")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
