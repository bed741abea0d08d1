package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"golang.org/x/sync/errgroup"
)

type DashboardSnapshot struct {
	Date      string                `json:"date"`
	Nutrition DailyNutrition        `json:"nutrition"`
	Goal      *models.NutritionGoal `json:"goal,omitempty"`

	Tasks          []models.Task `json:"tasks"`
	TasksCompleted int           `json:"tasks_completed"`
	TasksTotal     int           `json:"tasks_total"`

	Habits    []models.Habit    `json:"habits"`
	HabitLogs []models.HabitLog `json:"habit_logs"`

	RecentWorkouts []models.Workout `json:"recent_workouts"`
	LastWorkout    *models.Workout  `json:"last_workout,omitempty"`
	WeeklyVolume   float64          `json:"weekly_volume"`
	WorkoutStreak  int              `json:"workout_streak"`

	Sleep   *models.SleepLog `json:"sleep,omitempty"`
	Profile *models.Profile  `json:"profile,omitempty"`
}

type DashboardService struct {
	nutrition   *NutritionService
	goalRepo    repository.NutritionGoalRepository
	taskRepo    repository.TaskRepository
	habitRepo   repository.HabitRepository
	workoutRepo repository.WorkoutRepository
	sleepRepo   repository.SleepRepository
	profileRepo repository.ProfileRepository
}

func NewDashboardService(
	nutrition *NutritionService,
	goalRepo repository.NutritionGoalRepository,
	taskRepo repository.TaskRepository,
	habitRepo repository.HabitRepository,
	workoutRepo repository.WorkoutRepository,
	sleepRepo repository.SleepRepository,
	profileRepo repository.ProfileRepository,
) *DashboardService {
	return &DashboardService{
		nutrition:   nutrition,
		goalRepo:    goalRepo,
		taskRepo:    taskRepo,
		habitRepo:   habitRepo,
		workoutRepo: workoutRepo,
		sleepRepo:   sleepRepo,
		profileRepo: profileRepo,
	}
}

// Snapshot gathers every section of the dashboard concurrently. Each
// branch handles its own error and falls back to an empty section, so a
// single failing fetch degrades only its part of the snapshot and the
// group never short-circuits the others. No retries.
func (service *DashboardService) Snapshot(ctx context.Context, userID string) DashboardSnapshot {
	now := time.Now()
	today := now.Format("2006-01-02")
	snapshot := DashboardSnapshot{Date: today}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		summary, err := service.nutrition.DailySummary(groupCtx, userID, today)
		if err != nil {
			slog.Error("loading nutrition summary", "error", err)
			return nil
		}
		snapshot.Nutrition = summary
		return nil
	})

	group.Go(func() error {
		goal, err := service.goalRepo.FindActive(groupCtx, userID)
		if err != nil {
			return nil
		}
		snapshot.Goal = &goal
		return nil
	})

	group.Go(func() error {
		tasks, err := service.taskRepo.FindAll(groupCtx, userID, repository.TaskFilter{DueDate: today})
		if err != nil {
			slog.Error("loading today's tasks", "error", err)
			return nil
		}
		snapshot.Tasks = tasks
		return nil
	})

	group.Go(func() error {
		habits, err := service.habitRepo.FindActive(groupCtx, userID)
		if err != nil {
			slog.Error("loading habits", "error", err)
			return nil
		}
		snapshot.Habits = habits
		return nil
	})

	group.Go(func() error {
		logs, err := service.habitRepo.FindLogsByDate(groupCtx, userID, today)
		if err != nil {
			slog.Error("loading habit logs", "error", err)
			return nil
		}
		snapshot.HabitLogs = logs
		return nil
	})

	group.Go(func() error {
		workouts, err := service.workoutRepo.FindRecent(groupCtx, userID, 10)
		if err != nil {
			slog.Error("loading recent workouts", "error", err)
			return nil
		}
		snapshot.RecentWorkouts = workouts
		return nil
	})

	group.Go(func() error {
		sleep, err := service.sleepRepo.FindByDate(groupCtx, userID, today)
		if err != nil {
			return nil
		}
		snapshot.Sleep = &sleep
		return nil
	})

	group.Go(func() error {
		profile, err := service.profileRepo.FindByUserID(groupCtx, userID)
		if err != nil {
			return nil
		}
		snapshot.Profile = &profile
		return nil
	})

	group.Wait()

	snapshot.TasksTotal = len(snapshot.Tasks)
	for _, task := range snapshot.Tasks {
		if task.Status == models.TaskStatusCompleted {
			snapshot.TasksCompleted++
		}
	}

	if len(snapshot.RecentWorkouts) > 0 {
		snapshot.LastWorkout = &snapshot.RecentWorkouts[0]
	}

	cutoff := now.AddDate(0, 0, -7)
	for _, workout := range snapshot.RecentWorkouts {
		if workout.StartedAt.After(cutoff) {
			snapshot.WeeklyVolume += workout.TotalVolume
		}
	}

	snapshot.WorkoutStreak = workoutStreak(snapshot.RecentWorkouts, now)

	return snapshot
}

// workoutStreak only checks whether the latest workout was today or
// yesterday, so it never grows past 1. TODO: walk consecutive days once
// workouts are fetched beyond the dashboard's recent window.
func workoutStreak(workouts []models.Workout, now time.Time) int {
	if len(workouts) == 0 {
		return 0
	}
	last := workouts[0].StartedAt
	if now.Sub(last) < 48*time.Hour {
		return 1
	}
	return 0
}
