package handler

import (
	"net/http"

	"github.com/rahulnair-dev/event-platform/internal/model"
	"github.com/rahulnair-dev/event-platform/internal/service"
)

// RegistrationHandler serves the registration workflow.
type RegistrationHandler struct {
	registrations *service.RegistrationService
}

// NewRegistrationHandler constructs a RegistrationHandler.
func NewRegistrationHandler(registrations *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

// Register handles POST /api/v1/registrations/{eventID}
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r)
	eventID, err := idParam(r, "eventID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	reg, err := h.registrations.Register(r.Context(), p, eventID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

// ListMine handles GET /api/v1/registrations/my-registrations
func (h *RegistrationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r)
	regs, err := h.registrations.ListMine(r.Context(), p)
	if err != nil {
		respondError(w, err)
		return
	}
	if regs == nil {
		regs = []model.Registration{}
	}
	writeJSON(w, http.StatusOK, regs)
}

// Approve handles PUT /api/v1/registrations/{id}/approve and its historic
// alias PUT /api/v1/registrations/{id}/confirm.
func (h *RegistrationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r)
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid registration id")
		return
	}
	reg, err := h.registrations.Approve(r.Context(), p, id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

// Reject handles PUT /api/v1/registrations/{id}/reject
func (h *RegistrationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r)
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid registration id")
		return
	}

	var req model.DecisionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	reg, err := h.registrations.Reject(r.Context(), p, id, req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

// Cancel handles PUT /api/v1/registrations/{id}/cancel
func (h *RegistrationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r)
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid registration id")
		return
	}
	reg, err := h.registrations.Cancel(r.Context(), p, id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

// ListForEvent handles GET /api/v1/registrations/events/{eventID}
func (h *RegistrationHandler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r)
	eventID, err := idParam(r, "eventID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	regs, err := h.registrations.ListForEvent(r.Context(), p, eventID)
	if err != nil {
		respondError(w, err)
		return
	}
	if regs == nil {
		regs = []model.Registration{}
	}
	writeJSON(w, http.StatusOK, regs)
}
