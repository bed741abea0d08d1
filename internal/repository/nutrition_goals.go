package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/google/uuid"
)

type NutritionGoalRepository interface {
	FindActive(ctx context.Context, userID string) (models.NutritionGoal, error)
	Create(ctx context.Context, goal models.NutritionGoal) (models.NutritionGoal, error)
	Update(ctx context.Context, goal models.NutritionGoal) error
}

type SQLiteNutritionGoalRepository struct {
	database *sql.DB
}

func NewNutritionGoalRepository(database *sql.DB) *SQLiteNutritionGoalRepository {
	return &SQLiteNutritionGoalRepository{database: database}
}

func (repository *SQLiteNutritionGoalRepository) FindActive(ctx context.Context, userID string) (models.NutritionGoal, error) {
	var goal models.NutritionGoal
	err := repository.database.QueryRowContext(ctx,
		`SELECT id, user_id, calories_target, protein_g, carbs_g, fat_g, fiber_g, water_ml, active, created_at, updated_at
		FROM nutrition_goals WHERE user_id = ? AND active = 1
		ORDER BY created_at DESC LIMIT 1`, userID,
	).Scan(&goal.ID, &goal.UserID, &goal.CaloriesTarget, &goal.ProteinG, &goal.CarbsG,
		&goal.FatG, &goal.FiberG, &goal.WaterMl, &goal.Active, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return models.NutritionGoal{}, fmt.Errorf("finding active goal: %w", err)
	}
	return goal, nil
}

// Create deactivates any existing active goal first so at most one stays
// active per user.
func (repository *SQLiteNutritionGoalRepository) Create(ctx context.Context, goal models.NutritionGoal) (models.NutritionGoal, error) {
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	now := time.Now()
	goal.CreatedAt = now
	goal.UpdatedAt = now
	goal.Active = true

	if _, err := repository.database.ExecContext(ctx,
		"UPDATE nutrition_goals SET active = 0, updated_at = ? WHERE user_id = ? AND active = 1",
		now, goal.UserID,
	); err != nil {
		return models.NutritionGoal{}, fmt.Errorf("deactivating goals: %w", err)
	}

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO nutrition_goals (id, user_id, calories_target, protein_g, carbs_g, fat_g, fiber_g, water_ml, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		goal.ID, goal.UserID, goal.CaloriesTarget, goal.ProteinG, goal.CarbsG,
		goal.FatG, goal.FiberG, goal.WaterMl, goal.CreatedAt, goal.UpdatedAt,
	)
	if err != nil {
		return models.NutritionGoal{}, fmt.Errorf("creating goal: %w", err)
	}
	return goal, nil
}

func (repository *SQLiteNutritionGoalRepository) Update(ctx context.Context, goal models.NutritionGoal) error {
	goal.UpdatedAt = time.Now()
	_, err := repository.database.ExecContext(ctx,
		`UPDATE nutrition_goals SET calories_target = ?, protein_g = ?, carbs_g = ?,
			fat_g = ?, fiber_g = ?, water_ml = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		goal.CaloriesTarget, goal.ProteinG, goal.CarbsG, goal.FatG, goal.FiberG,
		goal.WaterMl, goal.UpdatedAt, goal.ID, goal.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}
	return nil
}
