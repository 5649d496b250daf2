// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service and discovery layers.
package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusevents/backend/internal/discovery"
	"github.com/campusevents/backend/internal/model"
	"github.com/campusevents/backend/internal/repository"
	"github.com/campusevents/backend/internal/service"
)

// EventHandler holds the HTTP handlers for event discovery and the
// organizer event lifecycle.
type EventHandler struct {
	discovery *discovery.Service
	events    *service.EventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(d *discovery.Service, events *service.EventService) *EventHandler {
	return &EventHandler{discovery: d, events: events}
}

type eventsListResponse struct {
	Success    bool                     `json:"success"`
	Events     []discovery.EventSummary `json:"events"`
	Pagination model.Pagination         `json:"pagination"`
}

type eventResponse struct {
	Success bool `json:"success"`
	Event   any  `json:"event"`
}

// eventWithDate re-exposes the calendar date as YYYY-MM-DD when a raw
// model.Event is serialized outside the discovery projections.
type eventWithDate struct {
	model.Event
	Date string `json:"date"`
}

func withDate(e model.Event) eventWithDate {
	return eventWithDate{Event: e, Date: e.DateString()}
}

// ListEvents handles GET /api/events
// Returns one page of published events matching the query filters.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q, err := discovery.ParseQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	events, meta, err := h.discovery.ListEvents(r.Context(), q)
	if err != nil {
		writeDiscoveryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, eventsListResponse{
		Success:    true,
		Events:     events,
		Pagination: meta,
	})
}

// GetEvent handles GET /api/events/{id}
// Returns the detail view for a single event of any status; visibility of
// non-published events is enforced by the routes that link here.
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.discovery.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "event not found")
			return
		}
		writeDiscoveryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, eventResponse{Success: true, Event: detail})
}

// CreateEvent handles POST /api/events
// Organizer-only; the event is created pending admin approval.
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user.Role == model.RoleOrganizer && !user.IsApproved {
		writeError(w, http.StatusForbidden, codeForbidden, "organizer account is pending approval")
		return
	}

	var req service.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid request body: "+err.Error())
		return
	}

	event, err := h.events.CreateEvent(r.Context(), user.ID, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, eventResponse{Success: true, Event: withDate(*event)})
}

// PublishEvent handles POST /api/events/{id}/publish (admin only).
func (h *EventHandler) PublishEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	event, err := h.events.Publish(r.Context(), id)
	if err != nil {
		writeLifecycleError(w, err, "publish")
		return
	}

	writeJSON(w, http.StatusOK, eventResponse{Success: true, Event: withDate(*event)})
}

// CancelEvent handles POST /api/events/{id}/cancel
// Allowed for admins and the owning organizer.
func (h *EventHandler) CancelEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user := UserFromContext(r.Context())

	event, err := h.events.Cancel(r.Context(), id, user)
	if err != nil {
		writeLifecycleError(w, err, "cancel")
		return
	}

	writeJSON(w, http.StatusOK, eventResponse{Success: true, Event: withDate(*event)})
}

// OrganizerEvents handles GET /api/organizer/events
// Returns the authenticated organizer's own events of any status.
func (h *EventHandler) OrganizerEvents(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	events, err := h.events.ListByOrganizer(r.Context(), user.ID, r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	out := make([]eventWithDate, 0, len(events))
	for _, e := range events {
		out = append(out, withDate(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "events": out})
}

func writeDiscoveryError(w http.ResponseWriter, err error) {
	var integrity *discovery.DataIntegrityError
	if errors.As(err, &integrity) {
		log.Printf("data integrity: %v", integrity)
		writeError(w, http.StatusInternalServerError, codeDataIntegrity, integrity.Error())
		return
	}
	log.Printf("discovery: %v", err)
	writeError(w, http.StatusInternalServerError, codeInternal, "failed to retrieve events")
}

func writeLifecycleError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "event not found")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, codeForbidden, "you may not "+op+" this event")
	case errors.Is(err, service.ErrInvalidTransition):
		writeError(w, http.StatusConflict, codeConflict, "event status does not allow "+op)
	default:
		log.Printf("%s event: %v", op, err)
		writeError(w, http.StatusInternalServerError, codeInternal, "failed to "+op+" event")
	}
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
