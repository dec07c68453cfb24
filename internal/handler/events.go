package handler

import (
	"net/http"

	"github.com/rahulnair-dev/event-platform/internal/model"
	"github.com/rahulnair-dev/event-platform/internal/service"
)

// EventHandler serves the event catalog.
type EventHandler struct {
	events *service.EventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(events *service.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// Create handles POST /api/v1/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r)

	var req model.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.events.Create(r.Context(), p, req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// List handles GET /api/v1/events. Published events only.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	events, err := h.events.ListPublished(r.Context(), skip, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// Get handles GET /api/v1/events/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	event, err := h.events.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Update handles PUT /api/v1/events/{id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r)
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req model.UpdateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.events.Update(r.Context(), p, id, req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Deactivate handles PUT /api/v1/events/{id}/deactivate
func (h *EventHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r)
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	event, err := h.events.Deactivate(r.Context(), p, id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Delete handles DELETE /api/v1/events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r)
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	event, err := h.events.Delete(r.Context(), p, id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}
