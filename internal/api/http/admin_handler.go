package http

import (
	"net/http"
	"strconv"

	"memberbase-backend/internal/domain"
	"memberbase-backend/internal/service"

	"github.com/gorilla/mux"
)

// AdminHandler serves the admin review endpoints
type AdminHandler struct {
	reviewSvc service.ReviewService
}

func NewAdminHandler(reviewSvc service.ReviewService) *AdminHandler {
	return &AdminHandler{reviewSvc: reviewSvc}
}

func (h *AdminHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	status := domain.ApplicationStatus(r.URL.Query().Get("status"))
	apps, err := h.reviewSvc.ListApplications(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	if apps == nil {
		apps = []domain.PendingApplication{}
	}
	writeJSON(w, http.StatusOK, apps)
}

func (h *AdminHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := applicationID(w, r)
	if !ok {
		return
	}
	app, err := h.reviewSvc.GetApplication(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

type transitionRequest struct {
	Status domain.ApplicationStatus `json:"status"`
	Notes  string                   `json:"notes"`
}

func (h *AdminHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id, ok := applicationID(w, r)
	if !ok {
		return
	}
	var req transitionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	app, err := h.reviewSvc.Transition(r.Context(), id, req.Status, adminID(r), req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

type reviewNotesRequest struct {
	Notes string `json:"notes"`
}

func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := applicationID(w, r)
	if !ok {
		return
	}
	var req reviewNotesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	app, err := h.reviewSvc.Approve(r.Context(), id, adminID(r), req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := applicationID(w, r)
	if !ok {
		return
	}
	var req reviewNotesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	app, err := h.reviewSvc.Reject(r.Context(), id, adminID(r), req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func applicationID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid application id"})
		return 0, false
	}
	return int32(id), true
}

func adminID(r *http.Request) int32 {
	if claims := ClaimsFromContext(r.Context()); claims != nil {
		return claims.UserID
	}
	return 0
}
