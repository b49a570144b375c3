package http

import (
	"net/http"

	"memberbase-backend/internal/service"
)

// AuthHandler serves code validation, registration and login
type AuthHandler struct {
	redemptionSvc   service.RedemptionService
	registrationSvc service.RegistrationService
}

func NewAuthHandler(redemptionSvc service.RedemptionService, registrationSvc service.RegistrationService) *AuthHandler {
	return &AuthHandler{
		redemptionSvc:   redemptionSvc,
		registrationSvc: registrationSvc,
	}
}

type validateCodeRequest struct {
	Code  string `json:"code"`
	Email string `json:"email"`
}

// ValidateCode is the UI's "check my code" step. It is read-only: the code is
// consumed only when registration completes.
func (h *AuthHandler) ValidateCode(w http.ResponseWriter, r *http.Request) {
	var req validateCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	red, err := h.redemptionSvc.Validate(r.Context(), req.Code, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, red)
}

type registerResponse struct {
	Account      any    `json:"account"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := decodeJSON(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	account, access, refresh, err := h.registrationSvc.Register(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, registerResponse{
		Account:      account,
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	access, refresh, err := h.registrationSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: access, RefreshToken: refresh})
}
