package repository_test

import (
	"context"
	"testing"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/testutil"
)

func TestMealRepository_FindOrCreate_ReusesRow(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	mealRepo := repository.NewMealRepository(db)
	ctx := context.Background()

	user := createTestUser(t, userRepo)

	first, err := mealRepo.FindOrCreate(ctx, user.ID, "2026-08-30", models.MealTypeBreakfast)
	if err != nil {
		t.Fatalf("creating meal: %v", err)
	}

	second, err := mealRepo.FindOrCreate(ctx, user.ID, "2026-08-30", models.MealTypeBreakfast)
	if err != nil {
		t.Fatalf("finding meal: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected the same meal row, got %s and %s", first.ID, second.ID)
	}

	other, err := mealRepo.FindOrCreate(ctx, user.ID, "2026-08-30", models.MealTypeDinner)
	if err != nil {
		t.Fatalf("creating dinner: %v", err)
	}
	if other.ID == first.ID {
		t.Error("expected a different row for a different meal type")
	}
}

func TestMealRepository_RecomputeTotals(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	mealRepo := repository.NewMealRepository(db)
	ctx := context.Background()

	user := createTestUser(t, userRepo)
	meal, _ := mealRepo.FindOrCreate(ctx, user.ID, "2026-08-30", models.MealTypeLunch)

	mealRepo.AddItem(ctx, models.MealItem{
		MealID: meal.ID, Name: "Arroz", Calories: 130, Protein: 2.7, Carbs: 28,
	})
	mealRepo.AddItem(ctx, models.MealItem{
		MealID: meal.ID, Name: "Pollo", Calories: 165, Protein: 31, Fat: 3.6,
	})

	totals, err := mealRepo.RecomputeTotals(ctx, meal.ID)
	if err != nil {
		t.Fatalf("recomputing totals: %v", err)
	}
	if totals.Calories != 295 {
		t.Errorf("expected 295 calories, got %v", totals.Calories)
	}
	if totals.Protein != 33.7 {
		t.Errorf("expected 33.7 protein, got %v", totals.Protein)
	}

	// Recomputing with no item changes yields the same totals.
	again, err := mealRepo.RecomputeTotals(ctx, meal.ID)
	if err != nil {
		t.Fatalf("recomputing totals again: %v", err)
	}
	if again != totals {
		t.Errorf("expected identical totals, got %+v then %+v", totals, again)
	}

	found, _ := mealRepo.FindByID(ctx, meal.ID, user.ID)
	if found.Totals.Calories != 295 {
		t.Errorf("expected cached calories 295, got %v", found.Totals.Calories)
	}
}

func TestMealRepository_RecomputeTotals_AfterDelete(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	mealRepo := repository.NewMealRepository(db)
	ctx := context.Background()

	user := createTestUser(t, userRepo)
	meal, _ := mealRepo.FindOrCreate(ctx, user.ID, "2026-08-30", models.MealTypeSnack)

	item, _ := mealRepo.AddItem(ctx, models.MealItem{MealID: meal.ID, Name: "Manzana", Calories: 52})
	mealRepo.RecomputeTotals(ctx, meal.ID)

	if err := mealRepo.DeleteItem(ctx, item.ID, meal.ID); err != nil {
		t.Fatalf("deleting item: %v", err)
	}
	totals, err := mealRepo.RecomputeTotals(ctx, meal.ID)
	if err != nil {
		t.Fatalf("recomputing totals: %v", err)
	}
	if totals.Calories != 0 {
		t.Errorf("expected 0 calories after delete, got %v", totals.Calories)
	}
}

func TestMealRepository_AddItem_DefaultQuantity(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	mealRepo := repository.NewMealRepository(db)
	ctx := context.Background()

	user := createTestUser(t, userRepo)
	meal, _ := mealRepo.FindOrCreate(ctx, user.ID, "2026-08-30", models.MealTypeBreakfast)

	item, err := mealRepo.AddItem(ctx, models.MealItem{MealID: meal.ID, Name: "Avena"})
	if err != nil {
		t.Fatalf("adding item: %v", err)
	}
	if item.QuantityG != 100 {
		t.Errorf("expected default quantity 100g, got %v", item.QuantityG)
	}
}

func TestMealRepository_FindByID_ScopedToUser(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	mealRepo := repository.NewMealRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, userRepo)
	intruder := createTestUser(t, userRepo)

	meal, _ := mealRepo.FindOrCreate(ctx, owner.ID, "2026-08-30", models.MealTypeLunch)

	if _, err := mealRepo.FindByID(ctx, meal.ID, intruder.ID); err == nil {
		t.Error("expected error reading another user's meal")
	}
}
