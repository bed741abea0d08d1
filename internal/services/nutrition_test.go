package services_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/services"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/testutil"
)

var userCounter int

func createUser(t *testing.T, db *sql.DB) models.User {
	t.Helper()
	userCounter++
	user, err := repository.NewUserRepository(db).Create(context.Background(), models.User{
		Email:        fmt.Sprintf("user-%d@example.com", userCounter),
		Name:         "Usuario",
		PasswordHash: "hash",
		Role:         models.RoleMember,
	})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	return user
}

func TestNutritionService_AddItem_UpdatesTotals(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	mealRepo := repository.NewMealRepository(db)
	goalRepo := repository.NewNutritionGoalRepository(db)
	service := services.NewNutritionService(mealRepo, goalRepo)
	ctx := context.Background()

	user := createUser(t, db)

	_, err := service.AddItem(ctx, user.ID, "2026-08-30", models.MealTypeBreakfast, models.MealItem{
		Name: "Huevos", Calories: 140, Protein: 12,
	})
	if err != nil {
		t.Fatalf("adding item: %v", err)
	}
	_, err = service.AddItem(ctx, user.ID, "2026-08-30", models.MealTypeBreakfast, models.MealItem{
		Name: "Pan", Calories: 80, Carbs: 15,
	})
	if err != nil {
		t.Fatalf("adding second item: %v", err)
	}

	meals, _ := mealRepo.FindAll(ctx, user.ID, repository.MealFilter{Date: "2026-08-30"})
	if len(meals) != 1 {
		t.Fatalf("expected both items on one meal, got %d meals", len(meals))
	}
	if meals[0].Totals.Calories != 220 {
		t.Errorf("expected cached total 220, got %v", meals[0].Totals.Calories)
	}
	if meals[0].Totals.Protein != 12 {
		t.Errorf("expected cached protein 12, got %v", meals[0].Totals.Protein)
	}
}

func TestNutritionService_RemoveItem_UpdatesTotals(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	mealRepo := repository.NewMealRepository(db)
	goalRepo := repository.NewNutritionGoalRepository(db)
	service := services.NewNutritionService(mealRepo, goalRepo)
	ctx := context.Background()

	user := createUser(t, db)

	item, _ := service.AddItem(ctx, user.ID, "2026-08-30", models.MealTypeDinner, models.MealItem{
		Name: "Pasta", Calories: 350,
	})

	if err := service.RemoveItem(ctx, user.ID, item.MealID, item.ID); err != nil {
		t.Fatalf("removing item: %v", err)
	}

	meal, _ := mealRepo.FindByID(ctx, item.MealID, user.ID)
	if meal.Totals.Calories != 0 {
		t.Errorf("expected 0 calories after removal, got %v", meal.Totals.Calories)
	}
}

func TestNutritionService_DailySummary(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	mealRepo := repository.NewMealRepository(db)
	goalRepo := repository.NewNutritionGoalRepository(db)
	service := services.NewNutritionService(mealRepo, goalRepo)
	ctx := context.Background()

	user := createUser(t, db)

	service.AddItem(ctx, user.ID, "2026-08-30", models.MealTypeBreakfast, models.MealItem{Name: "Avena", Calories: 150})
	service.AddItem(ctx, user.ID, "2026-08-30", models.MealTypeLunch, models.MealItem{Name: "Pollo", Calories: 400, Protein: 40})
	service.AddItem(ctx, user.ID, "2026-08-29", models.MealTypeLunch, models.MealItem{Name: "Ayer", Calories: 999})

	summary, err := service.DailySummary(ctx, user.ID, "2026-08-30")
	if err != nil {
		t.Fatalf("loading summary: %v", err)
	}
	if summary.Consumed.Calories != 550 {
		t.Errorf("expected 550 consumed calories, got %v", summary.Consumed.Calories)
	}
	if len(summary.Meals) != 2 {
		t.Errorf("expected 2 meals, got %d", len(summary.Meals))
	}
	if summary.Goal != nil {
		t.Error("expected nil goal when none is set")
	}

	goalRepo.Create(ctx, models.NutritionGoal{UserID: user.ID, CaloriesTarget: 2200})
	summary, _ = service.DailySummary(ctx, user.ID, "2026-08-30")
	if summary.Goal == nil || summary.Goal.CaloriesTarget != 2200 {
		t.Error("expected the active goal on the summary")
	}
}
