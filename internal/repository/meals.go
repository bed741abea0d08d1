package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/google/uuid"
)

type MealFilter struct {
	Date     string
	DateFrom string
	DateTo   string
	Type     *models.MealType
}

type MealRepository interface {
	FindByID(ctx context.Context, id string, userID string) (models.Meal, error)
	FindAll(ctx context.Context, userID string, filter MealFilter) ([]models.Meal, error)
	FindOrCreate(ctx context.Context, userID string, date string, mealType models.MealType) (models.Meal, error)
	Delete(ctx context.Context, id string, userID string) error

	FindItems(ctx context.Context, mealID string) ([]models.MealItem, error)
	AddItem(ctx context.Context, item models.MealItem) (models.MealItem, error)
	DeleteItem(ctx context.Context, itemID string, mealID string) error
	RecomputeTotals(ctx context.Context, mealID string) (models.NutritionTotals, error)
}

type SQLiteMealRepository struct {
	database *sql.DB
}

func NewMealRepository(database *sql.DB) *SQLiteMealRepository {
	return &SQLiteMealRepository{database: database}
}

func (repository *SQLiteMealRepository) FindByID(ctx context.Context, id string, userID string) (models.Meal, error) {
	var meal models.Meal
	err := repository.database.QueryRowContext(ctx,
		`SELECT id, user_id, meal_date, meal_type,
			total_calories, total_protein, total_carbs, total_fat, total_fiber,
			created_at, updated_at
		FROM meals WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(
		&meal.ID, &meal.UserID, &meal.Date, &meal.Type,
		&meal.Totals.Calories, &meal.Totals.Protein, &meal.Totals.Carbs, &meal.Totals.Fat, &meal.Totals.Fiber,
		&meal.CreatedAt, &meal.UpdatedAt,
	)
	if err != nil {
		return models.Meal{}, fmt.Errorf("finding meal by id: %w", err)
	}
	return meal, nil
}

func (repository *SQLiteMealRepository) FindAll(ctx context.Context, userID string, filter MealFilter) ([]models.Meal, error) {
	query := `SELECT id, user_id, meal_date, meal_type,
		total_calories, total_protein, total_carbs, total_fat, total_fiber,
		created_at, updated_at
	FROM meals WHERE user_id = ?`
	args := []interface{}{userID}

	if filter.Date != "" {
		query += " AND meal_date = ?"
		args = append(args, filter.Date)
	}
	if filter.DateFrom != "" {
		query += " AND meal_date >= ?"
		args = append(args, filter.DateFrom)
	}
	if filter.DateTo != "" {
		query += " AND meal_date <= ?"
		args = append(args, filter.DateTo)
	}
	if filter.Type != nil {
		query += " AND meal_type = ?"
		args = append(args, *filter.Type)
	}
	query += " ORDER BY meal_date DESC, meal_type ASC"

	rows, err := repository.database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding meals: %w", err)
	}
	defer rows.Close()

	var meals []models.Meal
	for rows.Next() {
		var meal models.Meal
		if err := rows.Scan(
			&meal.ID, &meal.UserID, &meal.Date, &meal.Type,
			&meal.Totals.Calories, &meal.Totals.Protein, &meal.Totals.Carbs, &meal.Totals.Fat, &meal.Totals.Fiber,
			&meal.CreatedAt, &meal.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning meal: %w", err)
		}
		meals = append(meals, meal)
	}
	return meals, rows.Err()
}

func (repository *SQLiteMealRepository) FindOrCreate(ctx context.Context, userID string, date string, mealType models.MealType) (models.Meal, error) {
	var meal models.Meal
	err := repository.database.QueryRowContext(ctx,
		`SELECT id, user_id, meal_date, meal_type,
			total_calories, total_protein, total_carbs, total_fat, total_fiber,
			created_at, updated_at
		FROM meals WHERE user_id = ? AND meal_date = ? AND meal_type = ?`,
		userID, date, mealType,
	).Scan(
		&meal.ID, &meal.UserID, &meal.Date, &meal.Type,
		&meal.Totals.Calories, &meal.Totals.Protein, &meal.Totals.Carbs, &meal.Totals.Fat, &meal.Totals.Fiber,
		&meal.CreatedAt, &meal.UpdatedAt,
	)
	if err == nil {
		return meal, nil
	}
	if err != sql.ErrNoRows {
		return models.Meal{}, fmt.Errorf("finding meal: %w", err)
	}

	now := time.Now()
	meal = models.Meal{
		ID:        uuid.New().String(),
		UserID:    userID,
		Date:      date,
		Type:      mealType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = repository.database.ExecContext(ctx,
		`INSERT INTO meals (id, user_id, meal_date, meal_type,
			total_calories, total_protein, total_carbs, total_fat, total_fiber,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, 0, 0, 0, 0, ?, ?)`,
		meal.ID, meal.UserID, meal.Date, meal.Type, meal.CreatedAt, meal.UpdatedAt,
	)
	if err != nil {
		return models.Meal{}, fmt.Errorf("creating meal: %w", err)
	}
	return meal, nil
}

func (repository *SQLiteMealRepository) Delete(ctx context.Context, id string, userID string) error {
	_, err := repository.database.ExecContext(ctx,
		"DELETE FROM meals WHERE id = ? AND user_id = ?", id, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting meal: %w", err)
	}
	return nil
}

func (repository *SQLiteMealRepository) FindItems(ctx context.Context, mealID string) ([]models.MealItem, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, meal_id, name, quantity_g, calories, protein, carbs, fat, fiber, created_at
		FROM meal_items WHERE meal_id = ? ORDER BY created_at ASC`, mealID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding meal items: %w", err)
	}
	defer rows.Close()

	var items []models.MealItem
	for rows.Next() {
		var item models.MealItem
		if err := rows.Scan(&item.ID, &item.MealID, &item.Name, &item.QuantityG,
			&item.Calories, &item.Protein, &item.Carbs, &item.Fat, &item.Fiber, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning meal item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (repository *SQLiteMealRepository) AddItem(ctx context.Context, item models.MealItem) (models.MealItem, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.QuantityG == 0 {
		item.QuantityG = 100
	}
	item.CreatedAt = time.Now()

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO meal_items (id, meal_id, name, quantity_g, calories, protein, carbs, fat, fiber, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.MealID, item.Name, item.QuantityG,
		item.Calories, item.Protein, item.Carbs, item.Fat, item.Fiber, item.CreatedAt,
	)
	if err != nil {
		return models.MealItem{}, fmt.Errorf("adding meal item: %w", err)
	}
	return item, nil
}

func (repository *SQLiteMealRepository) DeleteItem(ctx context.Context, itemID string, mealID string) error {
	_, err := repository.database.ExecContext(ctx,
		"DELETE FROM meal_items WHERE id = ? AND meal_id = ?", itemID, mealID,
	)
	if err != nil {
		return fmt.Errorf("deleting meal item: %w", err)
	}
	return nil
}

// RecomputeTotals folds the meal's current items into the cached totals on
// the meal row. The caller invokes it after every item insert or delete;
// running it again with no item changes yields the same totals.
func (repository *SQLiteMealRepository) RecomputeTotals(ctx context.Context, mealID string) (models.NutritionTotals, error) {
	var totals models.NutritionTotals
	err := repository.database.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(calories), 0), COALESCE(SUM(protein), 0),
			COALESCE(SUM(carbs), 0), COALESCE(SUM(fat), 0), COALESCE(SUM(fiber), 0)
		FROM meal_items WHERE meal_id = ?`, mealID,
	).Scan(&totals.Calories, &totals.Protein, &totals.Carbs, &totals.Fat, &totals.Fiber)
	if err != nil {
		return models.NutritionTotals{}, fmt.Errorf("summing meal items: %w", err)
	}

	_, err = repository.database.ExecContext(ctx,
		`UPDATE meals SET total_calories = ?, total_protein = ?, total_carbs = ?,
			total_fat = ?, total_fiber = ?, updated_at = ?
		WHERE id = ?`,
		totals.Calories, totals.Protein, totals.Carbs, totals.Fat, totals.Fiber,
		time.Now(), mealID,
	)
	if err != nil {
		return models.NutritionTotals{}, fmt.Errorf("updating meal totals: %w", err)
	}
	return totals, nil
}
