package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/services"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/testutil"
)

func TestCalculateTDEE(t *testing.T) {
	result, err := services.CalculateTDEE(models.Profile{
		Gender: "male", WeightKg: 95, HeightCm: 170, Age: 30,
		ActivityLevel: models.ActivityModerate,
	})
	if err != nil {
		t.Fatalf("calculating tdee: %v", err)
	}
	if result.BMR != 1868 {
		t.Errorf("expected BMR 1868, got %d", result.BMR)
	}
	if result.TDEE != 2895 {
		t.Errorf("expected TDEE 2895, got %d", result.TDEE)
	}
	if result.Deficit != 2395 {
		t.Errorf("expected deficit 2395, got %d", result.Deficit)
	}
	if result.Surplus != 3195 {
		t.Errorf("expected surplus 3195, got %d", result.Surplus)
	}
}

func TestCalculateTDEE_Female(t *testing.T) {
	result, err := services.CalculateTDEE(models.Profile{
		Gender: "female", WeightKg: 60, HeightCm: 165, Age: 28,
		ActivityLevel: models.ActivityLight,
	})
	if err != nil {
		t.Fatalf("calculating tdee: %v", err)
	}
	// 600 + 1031.25 - 140 - 161 = 1330.25 -> 1330
	if result.BMR != 1330 {
		t.Errorf("expected BMR 1330, got %d", result.BMR)
	}
	// 1330 * 1.375 = 1828.75 -> 1829
	if result.TDEE != 1829 {
		t.Errorf("expected TDEE 1829, got %d", result.TDEE)
	}
}

func TestCalculateTDEE_UnknownActivityFallsBackToSedentary(t *testing.T) {
	result, err := services.CalculateTDEE(models.Profile{
		Gender: "male", WeightKg: 70, HeightCm: 170, Age: 30,
		ActivityLevel: "extreme",
	})
	if err != nil {
		t.Fatalf("calculating tdee: %v", err)
	}
	// BMR 1618, sedentary multiplier 1.2 -> 1941.6 -> 1942
	if result.TDEE != 1942 {
		t.Errorf("expected TDEE 1942, got %d", result.TDEE)
	}
}

func TestCalculateTDEE_IncompleteProfile(t *testing.T) {
	_, err := services.CalculateTDEE(models.Profile{Gender: "male", WeightKg: 80})
	if err != services.ErrProfileIncomplete {
		t.Errorf("expected ErrProfileIncomplete, got %v", err)
	}
}

func TestAdherence(t *testing.T) {
	if got := services.Adherence(1800, 2000); got != 90 {
		t.Errorf("expected 90, got %d", got)
	}
	if got := services.Adherence(2500, 2000); got != 100 {
		t.Errorf("expected cap at 100, got %d", got)
	}
	if got := services.Adherence(1850, 2000); got != 93 {
		t.Errorf("expected rounded 93, got %d", got)
	}
	if got := services.Adherence(1000, 0); got != 0 {
		t.Errorf("expected 0 with no target, got %d", got)
	}
}

func TestReportService_Weekly(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	mealRepo := repository.NewMealRepository(db)
	goalRepo := repository.NewNutritionGoalRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	sleepRepo := repository.NewSleepRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	nutrition := services.NewNutritionService(mealRepo, goalRepo)
	service := services.NewReportService(mealRepo, goalRepo, workoutRepo, sleepRepo, habitRepo, profileRepo)
	ctx := context.Background()

	user := createUser(t, db)
	now := time.Now()
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	nutrition.AddItem(ctx, user.ID, today, models.MealTypeLunch, models.MealItem{Name: "A", Calories: 700, Protein: 50})
	nutrition.AddItem(ctx, user.ID, yesterday, models.MealTypeLunch, models.MealItem{Name: "B", Calories: 700, Protein: 20})

	goalRepo.Create(ctx, models.NutritionGoal{UserID: user.ID, CaloriesTarget: 2000})

	workoutRepo.Create(ctx, models.Workout{UserID: user.ID, Name: "Pierna"})

	sleepRepo.Upsert(ctx, models.SleepLog{UserID: user.ID, Date: today, Hours: 8})
	sleepRepo.Upsert(ctx, models.SleepLog{UserID: user.ID, Date: yesterday, Hours: 7})

	report, err := service.Weekly(ctx, user.ID, now)
	if err != nil {
		t.Fatalf("building report: %v", err)
	}

	// 1400 calories over 7 days.
	if report.AvgCalories != 200 {
		t.Errorf("expected avg calories 200, got %v", report.AvgCalories)
	}
	if report.AvgProtein != 10 {
		t.Errorf("expected avg protein 10, got %v", report.AvgProtein)
	}
	if report.CaloriesTarget != 2000 {
		t.Errorf("expected target 2000, got %v", report.CaloriesTarget)
	}
	if report.Adherence != 10 {
		t.Errorf("expected adherence 10, got %d", report.Adherence)
	}
	if report.WorkoutsLogged != 1 {
		t.Errorf("expected 1 workout, got %d", report.WorkoutsLogged)
	}
	if report.AvgSleepHours != 7.5 {
		t.Errorf("expected avg sleep 7.5, got %v", report.AvgSleepHours)
	}
}

func TestReportService_Weekly_TDEEFallbackTarget(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	mealRepo := repository.NewMealRepository(db)
	goalRepo := repository.NewNutritionGoalRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	sleepRepo := repository.NewSleepRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	service := services.NewReportService(mealRepo, goalRepo, workoutRepo, sleepRepo, habitRepo, profileRepo)
	ctx := context.Background()

	user := createUser(t, db)
	profileRepo.Upsert(ctx, models.Profile{
		UserID: user.ID, Gender: "male", WeightKg: 95, HeightCm: 170, Age: 30,
		ActivityLevel: models.ActivityModerate,
	})

	report, err := service.Weekly(ctx, user.ID, time.Now())
	if err != nil {
		t.Fatalf("building report: %v", err)
	}
	if report.CaloriesTarget != 2895 {
		t.Errorf("expected TDEE fallback target 2895, got %v", report.CaloriesTarget)
	}
}
