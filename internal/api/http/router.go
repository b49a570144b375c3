package http

import (
	"net/http"

	"memberbase-backend/internal/security"

	"github.com/gorilla/mux"
)

// NewRouter wires all handlers onto the API routes.
func NewRouter(
	appHandler *ApplicationHandler,
	authHandler *AuthHandler,
	adminHandler *AdminHandler,
	tokens security.TokenManager,
) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/applications", appHandler.Submit).Methods(http.MethodPost)

	api.HandleFunc("/auth/validate-code", authHandler.ValidateCode).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(Authenticate(tokens), RequireAdmin)
	admin.HandleFunc("/applications", adminHandler.ListApplications).Methods(http.MethodGet)
	admin.HandleFunc("/applications/{id}", adminHandler.GetApplication).Methods(http.MethodGet)
	admin.HandleFunc("/applications/{id}/transition", adminHandler.Transition).Methods(http.MethodPost)
	admin.HandleFunc("/applications/{id}/approve", adminHandler.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/applications/{id}/reject", adminHandler.Reject).Methods(http.MethodPost)

	return r
}
