package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
)

var ErrWorkoutAlreadyFinished = errors.New("workout is already finished")

type FitnessService struct {
	workoutRepo repository.WorkoutRepository
}

func NewFitnessService(workoutRepo repository.WorkoutRepository) *FitnessService {
	return &FitnessService{workoutRepo: workoutRepo}
}

func (service *FitnessService) Start(ctx context.Context, userID string, name string, notes string) (models.Workout, error) {
	return service.workoutRepo.Create(ctx, models.Workout{
		UserID: userID,
		Name:   name,
		Notes:  notes,
	})
}

// Finish stamps the end time, computes the duration and writes the total
// volume (Σ weight × reps over every set) alongside the row. The volume
// sum and the workout update are two separate writes.
func (service *FitnessService) Finish(ctx context.Context, userID string, workoutID string) (models.Workout, error) {
	workout, err := service.workoutRepo.FindByID(ctx, workoutID, userID)
	if err != nil {
		return models.Workout{}, err
	}
	if workout.EndedAt != nil {
		return models.Workout{}, ErrWorkoutAlreadyFinished
	}

	volume, err := service.workoutRepo.SumVolume(ctx, workout.ID)
	if err != nil {
		return models.Workout{}, err
	}

	now := time.Now()
	workout.EndedAt = &now
	workout.DurationMin = int(now.Sub(workout.StartedAt).Minutes())
	workout.TotalVolume = volume

	if err := service.workoutRepo.Update(ctx, workout); err != nil {
		return models.Workout{}, fmt.Errorf("finishing workout: %w", err)
	}
	return workout, nil
}

// WeeklyVolume sums the volume of workouts started within the trailing
// seven days of wall-clock time. Not calendar-week aligned.
func (service *FitnessService) WeeklyVolume(ctx context.Context, userID string, now time.Time) (float64, error) {
	workouts, err := service.workoutRepo.FindRecent(ctx, userID, 50)
	if err != nil {
		return 0, err
	}

	cutoff := now.AddDate(0, 0, -7)
	var volume float64
	for _, workout := range workouts {
		if workout.StartedAt.After(cutoff) {
			volume += workout.TotalVolume
		}
	}
	return volume, nil
}

type FitnessProgress struct {
	WorkoutsThisWeek int             `json:"workouts_this_week"`
	WeeklyVolume     float64         `json:"weekly_volume"`
	LastWorkout      *models.Workout `json:"last_workout,omitempty"`
}

func (service *FitnessService) Progress(ctx context.Context, userID string) (FitnessProgress, error) {
	workouts, err := service.workoutRepo.FindRecent(ctx, userID, 50)
	if err != nil {
		return FitnessProgress{}, err
	}

	now := time.Now()
	cutoff := now.AddDate(0, 0, -7)

	var progress FitnessProgress
	for i := range workouts {
		if workouts[i].StartedAt.After(cutoff) {
			progress.WorkoutsThisWeek++
			progress.WeeklyVolume += workouts[i].TotalVolume
		}
	}
	if len(workouts) > 0 {
		progress.LastWorkout = &workouts[0]
	}
	return progress, nil
}
