package handlers

import (
	"log/slog"
	"net/http"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/middleware"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/services"
	"github.com/go-chi/chi/v5"
)

type TokenHandler struct {
	tokenRepo repository.APITokenRepository
}

func NewTokenHandler(tokenRepo repository.APITokenRepository) *TokenHandler {
	return &TokenHandler{tokenRepo: tokenRepo}
}

func (handler *TokenHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	tokens, err := handler.tokenRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		slog.Error("finding tokens", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load tokens")
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

func (handler *TokenHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var payload struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &payload); err != nil || payload.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	rawToken := services.GenerateToken()
	token, err := handler.tokenRepo.Create(ctx, models.APIToken{
		Name:      payload.Name,
		TokenHash: repository.HashToken(rawToken),
		UserID:    user.ID,
	})
	if err != nil {
		slog.Error("creating token", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	// The raw token is only ever returned here.
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":    token.ID,
		"name":  token.Name,
		"token": rawToken,
	})
}

func (handler *TokenHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	if err := handler.tokenRepo.Delete(ctx, chi.URLParam(r, "id"), user.ID); err != nil {
		slog.Error("deleting token", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete token")
		return
	}
	w.WriteHeader(http.StatusOK)
}
