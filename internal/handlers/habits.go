package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/middleware"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/go-chi/chi/v5"
)

type HabitHandler struct {
	habitRepo repository.HabitRepository
}

func NewHabitHandler(habitRepo repository.HabitRepository) *HabitHandler {
	return &HabitHandler{habitRepo: habitRepo}
}

func (handler *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	habits, err := handler.habitRepo.FindActive(ctx, user.ID)
	if err != nil {
		slog.Error("finding habits", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load habits")
		return
	}
	writeJSON(w, http.StatusOK, habits)
}

func (handler *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var habit models.Habit
	if err := decodeJSON(r, &habit); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if habit.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	habit.UserID = user.ID

	created, err := handler.habitRepo.Create(ctx, habit)
	if err != nil {
		slog.Error("creating habit", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create habit")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (handler *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	habit, err := handler.habitRepo.FindByID(ctx, chi.URLParam(r, "id"), user.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}

	var payload models.Habit
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	habit.Name = payload.Name
	habit.Description = payload.Description
	habit.TargetValue = payload.TargetValue
	habit.Unit = payload.Unit
	habit.Active = payload.Active

	if err := handler.habitRepo.Update(ctx, habit); err != nil {
		slog.Error("updating habit", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update habit")
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

func (handler *HabitHandler) Log(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	habit, err := handler.habitRepo.FindByID(ctx, chi.URLParam(r, "id"), user.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}

	var payload struct {
		Date  string  `json:"date"`
		Value float64 `json:"value"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Date == "" {
		payload.Date = time.Now().Format("2006-01-02")
	}
	if payload.Value == 0 {
		payload.Value = 1
	}

	log, err := handler.habitRepo.AddToLog(ctx, habit.ID, payload.Date, payload.Value)
	if err != nil {
		slog.Error("logging habit", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to log habit")
		return
	}
	writeJSON(w, http.StatusOK, log)
}

func (handler *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	if err := handler.habitRepo.Delete(ctx, chi.URLParam(r, "id"), user.ID); err != nil {
		slog.Error("deleting habit", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete habit")
		return
	}
	w.WriteHeader(http.StatusOK)
}
