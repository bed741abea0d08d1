package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/middleware"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/services"
	"github.com/go-chi/chi/v5"
)

type NutritionHandler struct {
	nutritionService *services.NutritionService
	mealRepo         repository.MealRepository
	goalRepo         repository.NutritionGoalRepository
}

func NewNutritionHandler(
	nutritionService *services.NutritionService,
	mealRepo repository.MealRepository,
	goalRepo repository.NutritionGoalRepository,
) *NutritionHandler {
	return &NutritionHandler{
		nutritionService: nutritionService,
		mealRepo:         mealRepo,
		goalRepo:         goalRepo,
	}
}

func (handler *NutritionHandler) DailySummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	summary, err := handler.nutritionService.DailySummary(ctx, user.ID, date)
	if err != nil {
		slog.Error("loading daily summary", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (handler *NutritionHandler) ListMeals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	filter := repository.MealFilter{
		Date:     r.URL.Query().Get("date"),
		DateFrom: r.URL.Query().Get("from"),
		DateTo:   r.URL.Query().Get("to"),
	}

	meals, err := handler.mealRepo.FindAll(ctx, user.ID, filter)
	if err != nil {
		slog.Error("finding meals", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load meals")
		return
	}
	writeJSON(w, http.StatusOK, meals)
}

func (handler *NutritionHandler) MealItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	meal, err := handler.mealRepo.FindByID(ctx, chi.URLParam(r, "id"), user.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "meal not found")
		return
	}

	items, err := handler.mealRepo.FindItems(ctx, meal.ID)
	if err != nil {
		slog.Error("finding meal items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (handler *NutritionHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var payload struct {
		Date      string  `json:"date"`
		MealType  string  `json:"meal_type"`
		Name      string  `json:"name"`
		QuantityG float64 `json:"quantity_g"`
		Calories  float64 `json:"calories"`
		Protein   float64 `json:"protein"`
		Carbs     float64 `json:"carbs"`
		Fat       float64 `json:"fat"`
		Fiber     float64 `json:"fiber"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" || payload.MealType == "" {
		writeError(w, http.StatusBadRequest, "name and meal_type are required")
		return
	}
	if payload.Date == "" {
		payload.Date = time.Now().Format("2006-01-02")
	}

	item, err := handler.nutritionService.AddItem(ctx, user.ID, payload.Date, models.MealType(payload.MealType), models.MealItem{
		Name:      payload.Name,
		QuantityG: payload.QuantityG,
		Calories:  payload.Calories,
		Protein:   payload.Protein,
		Carbs:     payload.Carbs,
		Fat:       payload.Fat,
		Fiber:     payload.Fiber,
	})
	if err != nil {
		slog.Error("adding meal item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add item")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (handler *NutritionHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	mealID := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, "itemID")

	if err := handler.nutritionService.RemoveItem(ctx, user.ID, mealID, itemID); err != nil {
		slog.Error("deleting meal item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (handler *NutritionHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	goal, err := handler.goalRepo.FindActive(ctx, user.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "no active goal")
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (handler *NutritionHandler) SetGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var goal models.NutritionGoal
	if err := decodeJSON(r, &goal); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	goal.UserID = user.ID

	created, err := handler.goalRepo.Create(ctx, goal)
	if err != nil {
		slog.Error("creating goal", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save goal")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
