package services

import (
	"context"
	"fmt"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
)

type DailyNutrition struct {
	Date     string                 `json:"date"`
	Consumed models.NutritionTotals `json:"consumed"`
	Goal     *models.NutritionGoal  `json:"goal,omitempty"`
	Meals    []models.Meal          `json:"meals"`
}

type NutritionService struct {
	mealRepo repository.MealRepository
	goalRepo repository.NutritionGoalRepository
}

func NewNutritionService(mealRepo repository.MealRepository, goalRepo repository.NutritionGoalRepository) *NutritionService {
	return &NutritionService{mealRepo: mealRepo, goalRepo: goalRepo}
}

// AddItem inserts the item and recomputes the parent meal's cached totals.
// The two writes are sequential, not transactional; a crash in between
// leaves stale totals until the next recompute.
func (service *NutritionService) AddItem(ctx context.Context, userID string, date string, mealType models.MealType, item models.MealItem) (models.MealItem, error) {
	meal, err := service.mealRepo.FindOrCreate(ctx, userID, date, mealType)
	if err != nil {
		return models.MealItem{}, fmt.Errorf("resolving meal: %w", err)
	}

	item.MealID = meal.ID
	created, err := service.mealRepo.AddItem(ctx, item)
	if err != nil {
		return models.MealItem{}, err
	}

	if _, err := service.mealRepo.RecomputeTotals(ctx, meal.ID); err != nil {
		return models.MealItem{}, err
	}
	return created, nil
}

func (service *NutritionService) RemoveItem(ctx context.Context, userID string, mealID string, itemID string) error {
	meal, err := service.mealRepo.FindByID(ctx, mealID, userID)
	if err != nil {
		return err
	}
	if err := service.mealRepo.DeleteItem(ctx, itemID, meal.ID); err != nil {
		return err
	}
	_, err = service.mealRepo.RecomputeTotals(ctx, meal.ID)
	return err
}

// DailySummary folds the day's cached meal totals and pairs them with the
// active goal. A missing goal is not an error; the field stays nil.
func (service *NutritionService) DailySummary(ctx context.Context, userID string, date string) (DailyNutrition, error) {
	meals, err := service.mealRepo.FindAll(ctx, userID, repository.MealFilter{Date: date})
	if err != nil {
		return DailyNutrition{}, err
	}

	summary := DailyNutrition{Date: date, Meals: meals}
	for _, meal := range meals {
		summary.Consumed.Calories += meal.Totals.Calories
		summary.Consumed.Protein += meal.Totals.Protein
		summary.Consumed.Carbs += meal.Totals.Carbs
		summary.Consumed.Fat += meal.Totals.Fat
		summary.Consumed.Fiber += meal.Totals.Fiber
	}

	if goal, err := service.goalRepo.FindActive(ctx, userID); err == nil {
		summary.Goal = &goal
	}

	return summary, nil
}
