package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/google/uuid"
)

type HabitRepository interface {
	FindByID(ctx context.Context, id string, userID string) (models.Habit, error)
	FindActive(ctx context.Context, userID string) ([]models.Habit, error)
	Create(ctx context.Context, habit models.Habit) (models.Habit, error)
	Update(ctx context.Context, habit models.Habit) error
	Delete(ctx context.Context, id string, userID string) error

	FindLog(ctx context.Context, habitID string, date string) (models.HabitLog, error)
	FindLogsByDate(ctx context.Context, userID string, date string) ([]models.HabitLog, error)
	AddToLog(ctx context.Context, habitID string, date string, value float64) (models.HabitLog, error)
}

type SQLiteHabitRepository struct {
	database *sql.DB
}

func NewHabitRepository(database *sql.DB) *SQLiteHabitRepository {
	return &SQLiteHabitRepository{database: database}
}

func (repository *SQLiteHabitRepository) FindByID(ctx context.Context, id string, userID string) (models.Habit, error) {
	var habit models.Habit
	err := repository.database.QueryRowContext(ctx,
		`SELECT id, user_id, name, description, target_value, unit, active, created_at, updated_at
		FROM habits WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&habit.ID, &habit.UserID, &habit.Name, &habit.Description, &habit.TargetValue,
		&habit.Unit, &habit.Active, &habit.CreatedAt, &habit.UpdatedAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("finding habit by id: %w", err)
	}
	return habit, nil
}

func (repository *SQLiteHabitRepository) FindActive(ctx context.Context, userID string) ([]models.Habit, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, user_id, name, description, target_value, unit, active, created_at, updated_at
		FROM habits WHERE user_id = ? AND active = 1 ORDER BY created_at ASC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding active habits: %w", err)
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		var habit models.Habit
		if err := rows.Scan(&habit.ID, &habit.UserID, &habit.Name, &habit.Description, &habit.TargetValue,
			&habit.Unit, &habit.Active, &habit.CreatedAt, &habit.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning habit: %w", err)
		}
		habits = append(habits, habit)
	}
	return habits, rows.Err()
}

func (repository *SQLiteHabitRepository) Create(ctx context.Context, habit models.Habit) (models.Habit, error) {
	if habit.ID == "" {
		habit.ID = uuid.New().String()
	}
	now := time.Now()
	habit.CreatedAt = now
	habit.UpdatedAt = now
	habit.Active = true
	if habit.TargetValue == 0 {
		habit.TargetValue = 1
	}

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO habits (id, user_id, name, description, target_value, unit, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		habit.ID, habit.UserID, habit.Name, habit.Description, habit.TargetValue,
		habit.Unit, habit.CreatedAt, habit.UpdatedAt,
	)
	if err != nil {
		return models.Habit{}, fmt.Errorf("creating habit: %w", err)
	}
	return habit, nil
}

func (repository *SQLiteHabitRepository) Update(ctx context.Context, habit models.Habit) error {
	habit.UpdatedAt = time.Now()
	_, err := repository.database.ExecContext(ctx,
		`UPDATE habits SET name = ?, description = ?, target_value = ?, unit = ?, active = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		habit.Name, habit.Description, habit.TargetValue, habit.Unit, habit.Active,
		habit.UpdatedAt, habit.ID, habit.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating habit: %w", err)
	}
	return nil
}

func (repository *SQLiteHabitRepository) Delete(ctx context.Context, id string, userID string) error {
	_, err := repository.database.ExecContext(ctx,
		"DELETE FROM habits WHERE id = ? AND user_id = ?", id, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting habit: %w", err)
	}
	return nil
}

func (repository *SQLiteHabitRepository) FindLog(ctx context.Context, habitID string, date string) (models.HabitLog, error) {
	var log models.HabitLog
	err := repository.database.QueryRowContext(ctx,
		`SELECT id, habit_id, log_date, value, created_at, updated_at
		FROM habit_logs WHERE habit_id = ? AND log_date = ?`, habitID, date,
	).Scan(&log.ID, &log.HabitID, &log.Date, &log.Value, &log.CreatedAt, &log.UpdatedAt)
	if err != nil {
		return models.HabitLog{}, fmt.Errorf("finding habit log: %w", err)
	}
	return log, nil
}

func (repository *SQLiteHabitRepository) FindLogsByDate(ctx context.Context, userID string, date string) ([]models.HabitLog, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT l.id, l.habit_id, l.log_date, l.value, l.created_at, l.updated_at
		FROM habit_logs l
		JOIN habits h ON h.id = l.habit_id
		WHERE h.user_id = ? AND l.log_date = ?`, userID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("finding habit logs by date: %w", err)
	}
	defer rows.Close()

	var logs []models.HabitLog
	for rows.Next() {
		var log models.HabitLog
		if err := rows.Scan(&log.ID, &log.HabitID, &log.Date, &log.Value, &log.CreatedAt, &log.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning habit log: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// AddToLog accumulates into the single log row for (habit, date): logging
// twice the same day adds, it never creates a second row.
func (repository *SQLiteHabitRepository) AddToLog(ctx context.Context, habitID string, date string, value float64) (models.HabitLog, error) {
	now := time.Now()
	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO habit_logs (id, habit_id, log_date, value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(habit_id, log_date) DO UPDATE SET
			value = value + excluded.value,
			updated_at = excluded.updated_at`,
		uuid.New().String(), habitID, date, value, now, now,
	)
	if err != nil {
		return models.HabitLog{}, fmt.Errorf("logging habit: %w", err)
	}
	return repository.FindLog(ctx, habitID, date)
}
