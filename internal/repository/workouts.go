package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/google/uuid"
)

type WorkoutRepository interface {
	FindByID(ctx context.Context, id string, userID string) (models.Workout, error)
	FindRecent(ctx context.Context, userID string, limit int) ([]models.Workout, error)
	FindActive(ctx context.Context, userID string) (models.Workout, error)
	Create(ctx context.Context, workout models.Workout) (models.Workout, error)
	Update(ctx context.Context, workout models.Workout) error
	Delete(ctx context.Context, id string, userID string) error

	AddExercise(ctx context.Context, exercise models.WorkoutExercise) (models.WorkoutExercise, error)
	FindExercises(ctx context.Context, workoutID string) ([]models.WorkoutExercise, error)
	AddSet(ctx context.Context, set models.WorkoutSet) (models.WorkoutSet, error)
	FindSets(ctx context.Context, exerciseID string) ([]models.WorkoutSet, error)
	SumVolume(ctx context.Context, workoutID string) (float64, error)
}

type SQLiteWorkoutRepository struct {
	database *sql.DB
}

func NewWorkoutRepository(database *sql.DB) *SQLiteWorkoutRepository {
	return &SQLiteWorkoutRepository{database: database}
}

const workoutColumns = `id, user_id, name, notes, started_at, ended_at, duration_min, total_volume, created_at`

func scanWorkout(row interface{ Scan(...interface{}) error }, workout *models.Workout) error {
	return row.Scan(&workout.ID, &workout.UserID, &workout.Name, &workout.Notes,
		&workout.StartedAt, &workout.EndedAt, &workout.DurationMin, &workout.TotalVolume, &workout.CreatedAt)
}

func (repository *SQLiteWorkoutRepository) FindByID(ctx context.Context, id string, userID string) (models.Workout, error) {
	var workout models.Workout
	err := scanWorkout(repository.database.QueryRowContext(ctx,
		"SELECT "+workoutColumns+" FROM workouts WHERE id = ? AND user_id = ?", id, userID,
	), &workout)
	if err != nil {
		return models.Workout{}, fmt.Errorf("finding workout by id: %w", err)
	}
	return workout, nil
}

func (repository *SQLiteWorkoutRepository) FindRecent(ctx context.Context, userID string, limit int) ([]models.Workout, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := repository.database.QueryContext(ctx,
		"SELECT "+workoutColumns+" FROM workouts WHERE user_id = ? ORDER BY started_at DESC LIMIT ?",
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("finding recent workouts: %w", err)
	}
	defer rows.Close()

	var workouts []models.Workout
	for rows.Next() {
		var workout models.Workout
		if err := scanWorkout(rows, &workout); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		workouts = append(workouts, workout)
	}
	return workouts, rows.Err()
}

// FindActive returns the most recent workout without an end time. The
// schema does not enforce a single open workout per user; starting a new
// one while another is open simply shadows the older row.
func (repository *SQLiteWorkoutRepository) FindActive(ctx context.Context, userID string) (models.Workout, error) {
	var workout models.Workout
	err := scanWorkout(repository.database.QueryRowContext(ctx,
		"SELECT "+workoutColumns+" FROM workouts WHERE user_id = ? AND ended_at IS NULL ORDER BY started_at DESC LIMIT 1",
		userID,
	), &workout)
	if err != nil {
		return models.Workout{}, fmt.Errorf("finding active workout: %w", err)
	}
	return workout, nil
}

func (repository *SQLiteWorkoutRepository) Create(ctx context.Context, workout models.Workout) (models.Workout, error) {
	if workout.ID == "" {
		workout.ID = uuid.New().String()
	}
	now := time.Now()
	workout.CreatedAt = now
	if workout.StartedAt.IsZero() {
		workout.StartedAt = now
	}

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO workouts (id, user_id, name, notes, started_at, ended_at, duration_min, total_volume, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		workout.ID, workout.UserID, workout.Name, workout.Notes, workout.StartedAt,
		workout.EndedAt, workout.DurationMin, workout.TotalVolume, workout.CreatedAt,
	)
	if err != nil {
		return models.Workout{}, fmt.Errorf("creating workout: %w", err)
	}
	return workout, nil
}

func (repository *SQLiteWorkoutRepository) Update(ctx context.Context, workout models.Workout) error {
	_, err := repository.database.ExecContext(ctx,
		`UPDATE workouts SET name = ?, notes = ?, started_at = ?, ended_at = ?,
			duration_min = ?, total_volume = ?
		WHERE id = ? AND user_id = ?`,
		workout.Name, workout.Notes, workout.StartedAt, workout.EndedAt,
		workout.DurationMin, workout.TotalVolume, workout.ID, workout.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating workout: %w", err)
	}
	return nil
}

func (repository *SQLiteWorkoutRepository) Delete(ctx context.Context, id string, userID string) error {
	_, err := repository.database.ExecContext(ctx,
		"DELETE FROM workouts WHERE id = ? AND user_id = ?", id, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	return nil
}

func (repository *SQLiteWorkoutRepository) AddExercise(ctx context.Context, exercise models.WorkoutExercise) (models.WorkoutExercise, error) {
	if exercise.ID == "" {
		exercise.ID = uuid.New().String()
	}
	exercise.CreatedAt = time.Now()

	if exercise.Position == 0 {
		var max sql.NullInt64
		if err := repository.database.QueryRowContext(ctx,
			"SELECT MAX(position) FROM workout_exercises WHERE workout_id = ?", exercise.WorkoutID,
		).Scan(&max); err == nil && max.Valid {
			exercise.Position = int(max.Int64) + 1
		} else {
			exercise.Position = 1
		}
	}

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO workout_exercises (id, workout_id, name, position, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		exercise.ID, exercise.WorkoutID, exercise.Name, exercise.Position, exercise.CreatedAt,
	)
	if err != nil {
		return models.WorkoutExercise{}, fmt.Errorf("adding exercise: %w", err)
	}
	return exercise, nil
}

func (repository *SQLiteWorkoutRepository) FindExercises(ctx context.Context, workoutID string) ([]models.WorkoutExercise, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, workout_id, name, position, created_at
		FROM workout_exercises WHERE workout_id = ? ORDER BY position ASC`, workoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding exercises: %w", err)
	}
	defer rows.Close()

	var exercises []models.WorkoutExercise
	for rows.Next() {
		var exercise models.WorkoutExercise
		if err := rows.Scan(&exercise.ID, &exercise.WorkoutID, &exercise.Name,
			&exercise.Position, &exercise.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		exercises = append(exercises, exercise)
	}
	return exercises, rows.Err()
}

func (repository *SQLiteWorkoutRepository) AddSet(ctx context.Context, set models.WorkoutSet) (models.WorkoutSet, error) {
	if set.ID == "" {
		set.ID = uuid.New().String()
	}
	set.CreatedAt = time.Now()

	if set.Position == 0 {
		var max sql.NullInt64
		if err := repository.database.QueryRowContext(ctx,
			"SELECT MAX(position) FROM workout_sets WHERE exercise_id = ?", set.ExerciseID,
		).Scan(&max); err == nil && max.Valid {
			set.Position = int(max.Int64) + 1
		} else {
			set.Position = 1
		}
	}

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO workout_sets (id, exercise_id, position, reps, weight_kg, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		set.ID, set.ExerciseID, set.Position, set.Reps, set.WeightKg, set.CreatedAt,
	)
	if err != nil {
		return models.WorkoutSet{}, fmt.Errorf("adding set: %w", err)
	}
	return set, nil
}

func (repository *SQLiteWorkoutRepository) FindSets(ctx context.Context, exerciseID string) ([]models.WorkoutSet, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, exercise_id, position, reps, weight_kg, created_at
		FROM workout_sets WHERE exercise_id = ? ORDER BY position ASC`, exerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding sets: %w", err)
	}
	defer rows.Close()

	var sets []models.WorkoutSet
	for rows.Next() {
		var set models.WorkoutSet
		if err := rows.Scan(&set.ID, &set.ExerciseID, &set.Position, &set.Reps,
			&set.WeightKg, &set.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

func (repository *SQLiteWorkoutRepository) SumVolume(ctx context.Context, workoutID string) (float64, error) {
	var volume float64
	err := repository.database.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(s.weight_kg * s.reps), 0)
		FROM workout_sets s
		JOIN workout_exercises e ON e.id = s.exercise_id
		WHERE e.workout_id = ?`, workoutID,
	).Scan(&volume)
	if err != nil {
		return 0, fmt.Errorf("summing workout volume: %w", err)
	}
	return volume, nil
}
