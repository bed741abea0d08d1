package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/middleware"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (handler *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := handler.authService.Register(r.Context(), payload.Email, payload.Name, payload.Password)
	if err != nil {
		slog.Error("registering user", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	if err := handler.authService.SetSession(w, user.ID); err != nil {
		slog.Error("setting session", "error", err)
	}
	writeJSON(w, http.StatusCreated, user)
}

func (handler *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := handler.authService.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		slog.Error("logging in", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	if err := handler.authService.SetSession(w, user.ID); err != nil {
		slog.Error("setting session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to log in")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (handler *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	handler.authService.ClearSession(w)
	w.WriteHeader(http.StatusOK)
}

func (handler *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, middleware.GetUser(r.Context()))
}
