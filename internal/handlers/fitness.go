package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/middleware"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/services"
	"github.com/go-chi/chi/v5"
)

type FitnessHandler struct {
	fitnessService *services.FitnessService
	workoutRepo    repository.WorkoutRepository
}

func NewFitnessHandler(fitnessService *services.FitnessService, workoutRepo repository.WorkoutRepository) *FitnessHandler {
	return &FitnessHandler{fitnessService: fitnessService, workoutRepo: workoutRepo}
}

func (handler *FitnessHandler) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	workouts, err := handler.workoutRepo.FindRecent(ctx, user.ID, limit)
	if err != nil {
		slog.Error("finding workouts", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load workouts")
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (handler *FitnessHandler) Active(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	workout, err := handler.workoutRepo.FindActive(ctx, user.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "no active workout")
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (handler *FitnessHandler) Start(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var payload struct {
		Name  string `json:"name"`
		Notes string `json:"notes"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	workout, err := handler.fitnessService.Start(ctx, user.ID, payload.Name, payload.Notes)
	if err != nil {
		slog.Error("starting workout", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to start workout")
		return
	}
	writeJSON(w, http.StatusCreated, workout)
}

func (handler *FitnessHandler) Finish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	workout, err := handler.fitnessService.Finish(ctx, user.ID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, services.ErrWorkoutAlreadyFinished) {
			writeError(w, http.StatusBadRequest, "workout is already finished")
			return
		}
		slog.Error("finishing workout", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to finish workout")
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (handler *FitnessHandler) AddExercise(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	workout, err := handler.workoutRepo.FindByID(ctx, chi.URLParam(r, "id"), user.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "workout not found")
		return
	}

	var payload struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &payload); err != nil || payload.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	exercise, err := handler.workoutRepo.AddExercise(ctx, models.WorkoutExercise{
		WorkoutID: workout.ID,
		Name:      payload.Name,
	})
	if err != nil {
		slog.Error("adding exercise", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add exercise")
		return
	}
	writeJSON(w, http.StatusCreated, exercise)
}

func (handler *FitnessHandler) AddSet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	workout, err := handler.workoutRepo.FindByID(ctx, chi.URLParam(r, "id"), user.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "workout not found")
		return
	}

	var payload struct {
		ExerciseID string  `json:"exercise_id"`
		Reps       int     `json:"reps"`
		WeightKg   float64 `json:"weight_kg"`
	}
	if err := decodeJSON(r, &payload); err != nil || payload.ExerciseID == "" {
		writeError(w, http.StatusBadRequest, "exercise_id is required")
		return
	}

	// The exercise must belong to this workout.
	exercises, err := handler.workoutRepo.FindExercises(ctx, workout.ID)
	if err != nil {
		slog.Error("finding exercises", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add set")
		return
	}
	owned := false
	for _, exercise := range exercises {
		if exercise.ID == payload.ExerciseID {
			owned = true
			break
		}
	}
	if !owned {
		writeError(w, http.StatusNotFound, "exercise not found")
		return
	}

	set, err := handler.workoutRepo.AddSet(ctx, models.WorkoutSet{
		ExerciseID: payload.ExerciseID,
		Reps:       payload.Reps,
		WeightKg:   payload.WeightKg,
	})
	if err != nil {
		slog.Error("adding set", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add set")
		return
	}
	writeJSON(w, http.StatusCreated, set)
}

func (handler *FitnessHandler) Progress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	progress, err := handler.fitnessService.Progress(ctx, user.ID)
	if err != nil {
		slog.Error("loading fitness progress", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load progress")
		return
	}
	writeJSON(w, http.StatusOK, progress)
}
