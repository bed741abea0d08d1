package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
)

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (models.Profile, error)
	Upsert(ctx context.Context, profile models.Profile) (models.Profile, error)
}

type SQLiteProfileRepository struct {
	database *sql.DB
}

func NewProfileRepository(database *sql.DB) *SQLiteProfileRepository {
	return &SQLiteProfileRepository{database: database}
}

func (repository *SQLiteProfileRepository) FindByUserID(ctx context.Context, userID string) (models.Profile, error) {
	var profile models.Profile
	err := repository.database.QueryRowContext(ctx,
		`SELECT user_id, gender, weight_kg, height_cm, age, activity_level, goal, updated_at
		FROM profiles WHERE user_id = ?`, userID,
	).Scan(&profile.UserID, &profile.Gender, &profile.WeightKg, &profile.HeightCm,
		&profile.Age, &profile.ActivityLevel, &profile.Goal, &profile.UpdatedAt)
	if err != nil {
		return models.Profile{}, fmt.Errorf("finding profile: %w", err)
	}
	return profile, nil
}

func (repository *SQLiteProfileRepository) Upsert(ctx context.Context, profile models.Profile) (models.Profile, error) {
	profile.UpdatedAt = time.Now()
	if profile.ActivityLevel == "" {
		profile.ActivityLevel = models.ActivitySedentary
	}

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO profiles (user_id, gender, weight_kg, height_cm, age, activity_level, goal, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			gender = excluded.gender,
			weight_kg = excluded.weight_kg,
			height_cm = excluded.height_cm,
			age = excluded.age,
			activity_level = excluded.activity_level,
			goal = excluded.goal,
			updated_at = excluded.updated_at`,
		profile.UserID, profile.Gender, profile.WeightKg, profile.HeightCm,
		profile.Age, profile.ActivityLevel, profile.Goal, profile.UpdatedAt,
	)
	if err != nil {
		return models.Profile{}, fmt.Errorf("upserting profile: %w", err)
	}
	return profile, nil
}
