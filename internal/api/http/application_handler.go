package http

import (
	"net/http"

	"memberbase-backend/internal/service"
)

// ApplicationHandler serves the public application-intake endpoint
type ApplicationHandler struct {
	appSvc service.ApplicationService
}

func NewApplicationHandler(appSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc}
}

func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input service.SubmitApplicationInput
	if err := decodeJSON(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	app, err := h.appSvc.Submit(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}
