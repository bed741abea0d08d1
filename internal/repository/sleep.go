package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/google/uuid"
)

type SleepRepository interface {
	FindByDate(ctx context.Context, userID string, date string) (models.SleepLog, error)
	FindRange(ctx context.Context, userID string, from string, to string) ([]models.SleepLog, error)
	Upsert(ctx context.Context, log models.SleepLog) (models.SleepLog, error)
	Delete(ctx context.Context, id string, userID string) error
}

type SQLiteSleepRepository struct {
	database *sql.DB
}

func NewSleepRepository(database *sql.DB) *SQLiteSleepRepository {
	return &SQLiteSleepRepository{database: database}
}

func (repository *SQLiteSleepRepository) FindByDate(ctx context.Context, userID string, date string) (models.SleepLog, error) {
	var log models.SleepLog
	err := repository.database.QueryRowContext(ctx,
		`SELECT id, user_id, sleep_date, hours, quality, notes, created_at, updated_at
		FROM sleep_logs WHERE user_id = ? AND sleep_date = ?`, userID, date,
	).Scan(&log.ID, &log.UserID, &log.Date, &log.Hours, &log.Quality, &log.Notes,
		&log.CreatedAt, &log.UpdatedAt)
	if err != nil {
		return models.SleepLog{}, fmt.Errorf("finding sleep log: %w", err)
	}
	return log, nil
}

func (repository *SQLiteSleepRepository) FindRange(ctx context.Context, userID string, from string, to string) ([]models.SleepLog, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, user_id, sleep_date, hours, quality, notes, created_at, updated_at
		FROM sleep_logs WHERE user_id = ? AND sleep_date >= ? AND sleep_date <= ?
		ORDER BY sleep_date ASC`, userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("finding sleep logs: %w", err)
	}
	defer rows.Close()

	var logs []models.SleepLog
	for rows.Next() {
		var log models.SleepLog
		if err := rows.Scan(&log.ID, &log.UserID, &log.Date, &log.Hours, &log.Quality,
			&log.Notes, &log.CreatedAt, &log.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning sleep log: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (repository *SQLiteSleepRepository) Upsert(ctx context.Context, log models.SleepLog) (models.SleepLog, error) {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	now := time.Now()
	log.CreatedAt = now
	log.UpdatedAt = now

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO sleep_logs (id, user_id, sleep_date, hours, quality, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, sleep_date) DO UPDATE SET
			hours = excluded.hours,
			quality = excluded.quality,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		log.ID, log.UserID, log.Date, log.Hours, log.Quality, log.Notes,
		log.CreatedAt, log.UpdatedAt,
	)
	if err != nil {
		return models.SleepLog{}, fmt.Errorf("upserting sleep log: %w", err)
	}
	return repository.FindByDate(ctx, log.UserID, log.Date)
}

func (repository *SQLiteSleepRepository) Delete(ctx context.Context, id string, userID string) error {
	_, err := repository.database.ExecContext(ctx,
		"DELETE FROM sleep_logs WHERE id = ? AND user_id = ?", id, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting sleep log: %w", err)
	}
	return nil
}
