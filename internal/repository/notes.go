package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/google/uuid"
)

type NoteRepository interface {
	FindByID(ctx context.Context, id string, userID string) (models.Note, error)
	FindAll(ctx context.Context, userID string) ([]models.Note, error)
	Create(ctx context.Context, note models.Note) (models.Note, error)
	Update(ctx context.Context, note models.Note) error
	Delete(ctx context.Context, id string, userID string) error
}

type SQLiteNoteRepository struct {
	database *sql.DB
}

func NewNoteRepository(database *sql.DB) *SQLiteNoteRepository {
	return &SQLiteNoteRepository{database: database}
}

func (repository *SQLiteNoteRepository) FindByID(ctx context.Context, id string, userID string) (models.Note, error) {
	var note models.Note
	err := repository.database.QueryRowContext(ctx,
		`SELECT id, user_id, title, content, tags, created_at, updated_at
		FROM notes WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.Tags,
		&note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return models.Note{}, fmt.Errorf("finding note by id: %w", err)
	}
	return note, nil
}

func (repository *SQLiteNoteRepository) FindAll(ctx context.Context, userID string) ([]models.Note, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, user_id, title, content, tags, created_at, updated_at
		FROM notes WHERE user_id = ? ORDER BY updated_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content,
			&note.Tags, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func (repository *SQLiteNoteRepository) Create(ctx context.Context, note models.Note) (models.Note, error) {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO notes (id, user_id, title, content, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		note.ID, note.UserID, note.Title, note.Content, note.Tags,
		note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return models.Note{}, fmt.Errorf("creating note: %w", err)
	}
	return note, nil
}

func (repository *SQLiteNoteRepository) Update(ctx context.Context, note models.Note) error {
	note.UpdatedAt = time.Now()
	_, err := repository.database.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, tags = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		note.Title, note.Content, note.Tags, note.UpdatedAt, note.ID, note.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating note: %w", err)
	}
	return nil
}

func (repository *SQLiteNoteRepository) Delete(ctx context.Context, id string, userID string) error {
	_, err := repository.database.ExecContext(ctx,
		"DELETE FROM notes WHERE id = ? AND user_id = ?", id, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	return nil
}
