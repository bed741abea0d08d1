package handlers

import (
	"log/slog"
	"net/http"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
)

type UserHandler struct {
	userRepo repository.UserRepository
}

func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

func (handler *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := handler.userRepo.FindAll(r.Context())
	if err != nil {
		slog.Error("finding users", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}
