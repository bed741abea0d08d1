package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/google/uuid"
)

const (
	OrderByDueDateAsc  = "due_date ASC NULLS LAST, created_at ASC"
	OrderByCreatedDesc = "created_at DESC"
)

type TaskFilter struct {
	Status   *models.TaskStatus
	Statuses []models.TaskStatus
	Priority *models.TaskPriority
	DueDate  string
	OrderBy  string
	Limit    int
}

type TaskRepository interface {
	FindByID(ctx context.Context, id string, userID string) (models.Task, error)
	FindAll(ctx context.Context, userID string, filter TaskFilter) ([]models.Task, error)
	Create(ctx context.Context, task models.Task) (models.Task, error)
	Update(ctx context.Context, task models.Task) error
	Delete(ctx context.Context, id string, userID string) error
}

type SQLiteTaskRepository struct {
	database *sql.DB
}

func NewTaskRepository(database *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{database: database}
}

func (repository *SQLiteTaskRepository) FindByID(ctx context.Context, id string, userID string) (models.Task, error) {
	var task models.Task
	err := repository.database.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, priority, status, due_date, due_time,
			completed_at, created_at, updated_at
		FROM tasks WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Priority,
		&task.Status, &task.DueDate, &task.DueTime, &task.CompletedAt, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("finding task by id: %w", err)
	}
	return task, nil
}

func (repository *SQLiteTaskRepository) FindAll(ctx context.Context, userID string, filter TaskFilter) ([]models.Task, error) {
	query := `SELECT id, user_id, title, description, priority, status, due_date, due_time,
		completed_at, created_at, updated_at
	FROM tasks WHERE user_id = ?`
	args := []interface{}{userID}

	if filter.Status != nil {
		query += " AND status = ?"
		args = append(args, *filter.Status)
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			placeholders[i] = "?"
			args = append(args, string(s))
		}
		query += " AND status IN (" + strings.Join(placeholders, ",") + ")"
	}
	if filter.Priority != nil {
		query += " AND priority = ?"
		args = append(args, *filter.Priority)
	}
	if filter.DueDate != "" {
		query += " AND due_date = ?"
		args = append(args, filter.DueDate)
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = OrderByDueDateAsc
	}
	query += " ORDER BY " + orderBy

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := repository.database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Priority,
			&task.Status, &task.DueDate, &task.DueTime, &task.CompletedAt, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (repository *SQLiteTaskRepository) Create(ctx context.Context, task models.Task) (models.Task, error) {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Status == "" {
		task.Status = models.TaskStatusPending
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, title, description, priority, status, due_date, due_time,
			completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.UserID, task.Title, task.Description, task.Priority, task.Status,
		task.DueDate, task.DueTime, task.CompletedAt, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("creating task: %w", err)
	}
	return task, nil
}

func (repository *SQLiteTaskRepository) Update(ctx context.Context, task models.Task) error {
	task.UpdatedAt = time.Now()
	_, err := repository.database.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, priority = ?, status = ?,
			due_date = ?, due_time = ?, completed_at = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		task.Title, task.Description, task.Priority, task.Status,
		task.DueDate, task.DueTime, task.CompletedAt, task.UpdatedAt,
		task.ID, task.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

func (repository *SQLiteTaskRepository) Delete(ctx context.Context, id string, userID string) error {
	_, err := repository.database.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = ? AND user_id = ?", id, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}
