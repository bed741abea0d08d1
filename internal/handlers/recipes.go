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

type RecipeHandler struct {
	recipeService *services.RecipeService
	pantryRepo    repository.PantryRepository
}

func NewRecipeHandler(recipeService *services.RecipeService, pantryRepo repository.PantryRepository) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService, pantryRepo: pantryRepo}
}

func (handler *RecipeHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	suggestions, err := handler.recipeService.Suggestions(ctx, user.ID)
	if err != nil {
		slog.Error("loading recipe suggestions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load suggestions")
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (handler *RecipeHandler) ListPantry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	items, err := handler.pantryRepo.FindAll(ctx, user.ID)
	if err != nil {
		slog.Error("finding pantry items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load pantry")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (handler *RecipeHandler) AddPantryItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var item models.PantryItem
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if item.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	item.UserID = user.ID

	created, err := handler.pantryRepo.Create(ctx, item)
	if err != nil {
		slog.Error("adding pantry item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add pantry item")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (handler *RecipeHandler) DeletePantryItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	if err := handler.pantryRepo.Delete(ctx, chi.URLParam(r, "id"), user.ID); err != nil {
		slog.Error("deleting pantry item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete pantry item")
		return
	}
	w.WriteHeader(http.StatusOK)
}
