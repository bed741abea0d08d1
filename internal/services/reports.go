package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
)

var ErrProfileIncomplete = errors.New("profile is missing weight, height or age")

var activityMultipliers = map[models.ActivityLevel]float64{
	models.ActivitySedentary: 1.2,
	models.ActivityLight:     1.375,
	models.ActivityModerate:  1.55,
	models.ActivityActive:    1.725,
	models.ActivityAthlete:   1.9,
}

type TDEEResult struct {
	BMR     int `json:"bmr"`
	TDEE    int `json:"tdee"`
	Deficit int `json:"deficit"`
	Surplus int `json:"surplus"`
}

// CalculateTDEE applies Mifflin-St Jeor to the profile:
// BMR = 10*kg + 6.25*cm - 5*age, +5 for male / -161 otherwise, rounded.
// TDEE = round(BMR * activity multiplier); deficit -500, surplus +300.
func CalculateTDEE(profile models.Profile) (TDEEResult, error) {
	if profile.WeightKg <= 0 || profile.HeightCm <= 0 || profile.Age <= 0 {
		return TDEEResult{}, ErrProfileIncomplete
	}

	bmr := 10*profile.WeightKg + 6.25*profile.HeightCm - 5*float64(profile.Age)
	if profile.Gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}

	multiplier, ok := activityMultipliers[profile.ActivityLevel]
	if !ok {
		multiplier = activityMultipliers[models.ActivitySedentary]
	}

	roundedBMR := int(math.Round(bmr))
	tdee := int(math.Round(float64(roundedBMR) * multiplier))

	return TDEEResult{
		BMR:     roundedBMR,
		TDEE:    tdee,
		Deficit: tdee - 500,
		Surplus: tdee + 300,
	}, nil
}

// Adherence is the consumed/target percentage, rounded and capped at 100.
func Adherence(avgConsumed float64, target float64) int {
	if target <= 0 {
		return 0
	}
	adherence := int(math.Round(avgConsumed / target * 100))
	if adherence > 100 {
		adherence = 100
	}
	return adherence
}

type WeeklyReport struct {
	From            string  `json:"from"`
	To              string  `json:"to"`
	AvgCalories     float64 `json:"avg_calories"`
	AvgProtein      float64 `json:"avg_protein"`
	CaloriesTarget  float64 `json:"calories_target"`
	Adherence       int     `json:"adherence"`
	WorkoutsLogged  int     `json:"workouts_logged"`
	AvgSleepHours   float64 `json:"avg_sleep_hours"`
	HabitCompletion int     `json:"habit_completion"`
}

type ReportService struct {
	mealRepo    repository.MealRepository
	goalRepo    repository.NutritionGoalRepository
	workoutRepo repository.WorkoutRepository
	sleepRepo   repository.SleepRepository
	habitRepo   repository.HabitRepository
	profileRepo repository.ProfileRepository
}

func NewReportService(
	mealRepo repository.MealRepository,
	goalRepo repository.NutritionGoalRepository,
	workoutRepo repository.WorkoutRepository,
	sleepRepo repository.SleepRepository,
	habitRepo repository.HabitRepository,
	profileRepo repository.ProfileRepository,
) *ReportService {
	return &ReportService{
		mealRepo:    mealRepo,
		goalRepo:    goalRepo,
		workoutRepo: workoutRepo,
		sleepRepo:   sleepRepo,
		habitRepo:   habitRepo,
		profileRepo: profileRepo,
	}
}

func (service *ReportService) Weekly(ctx context.Context, userID string, now time.Time) (WeeklyReport, error) {
	to := now.Format("2006-01-02")
	from := now.AddDate(0, 0, -6).Format("2006-01-02")

	report := WeeklyReport{From: from, To: to}

	meals, err := service.mealRepo.FindAll(ctx, userID, repository.MealFilter{DateFrom: from, DateTo: to})
	if err != nil {
		return WeeklyReport{}, err
	}

	var totalCalories, totalProtein float64
	for _, meal := range meals {
		totalCalories += meal.Totals.Calories
		totalProtein += meal.Totals.Protein
	}
	report.AvgCalories = math.Round(totalCalories / 7)
	report.AvgProtein = math.Round(totalProtein / 7)

	// Target comes from the active goal, falling back to the profile TDEE.
	if goal, err := service.goalRepo.FindActive(ctx, userID); err == nil {
		report.CaloriesTarget = goal.CaloriesTarget
	} else if profile, err := service.profileRepo.FindByUserID(ctx, userID); err == nil {
		if tdee, err := CalculateTDEE(profile); err == nil {
			report.CaloriesTarget = float64(tdee.TDEE)
		}
	}
	report.Adherence = Adherence(report.AvgCalories, report.CaloriesTarget)

	if workouts, err := service.workoutRepo.FindRecent(ctx, userID, 50); err == nil {
		cutoff := now.AddDate(0, 0, -7)
		for _, workout := range workouts {
			if workout.StartedAt.After(cutoff) {
				report.WorkoutsLogged++
			}
		}
	}

	if sleepLogs, err := service.sleepRepo.FindRange(ctx, userID, from, to); err == nil && len(sleepLogs) > 0 {
		var totalHours float64
		for _, log := range sleepLogs {
			totalHours += log.Hours
		}
		report.AvgSleepHours = math.Round(totalHours/float64(len(sleepLogs))*10) / 10
	}

	if habits, err := service.habitRepo.FindActive(ctx, userID); err == nil && len(habits) > 0 {
		completed := 0
		checked := 0
		for day := 0; day < 7; day++ {
			date := now.AddDate(0, 0, -day).Format("2006-01-02")
			for _, habit := range habits {
				checked++
				if log, err := service.habitRepo.FindLog(ctx, habit.ID, date); err == nil && log.Value >= habit.TargetValue {
					completed++
				}
			}
		}
		if checked > 0 {
			report.HabitCompletion = int(math.Round(float64(completed) / float64(checked) * 100))
		}
	}

	return report, nil
}
