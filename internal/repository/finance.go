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

type TransactionFilter struct {
	Type     *models.TransactionType
	Category string
	DateFrom string
	DateTo   string
	Limit    int
}

type FinanceRepository interface {
	FindTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string, userID string) error
	SumByCategory(ctx context.Context, userID string, category string, from string, to string) (float64, error)

	FindBudgets(ctx context.Context, userID string) ([]models.Budget, error)
	UpsertBudget(ctx context.Context, budget models.Budget) (models.Budget, error)
	DeleteBudget(ctx context.Context, id string, userID string) error
}

type SQLiteFinanceRepository struct {
	database *sql.DB
}

func NewFinanceRepository(database *sql.DB) *SQLiteFinanceRepository {
	return &SQLiteFinanceRepository{database: database}
}

func (repository *SQLiteFinanceRepository) FindTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]models.Transaction, error) {
	query := `SELECT id, user_id, amount, tx_type, category, description, tx_date, created_at
	FROM transactions WHERE user_id = ?`
	args := []interface{}{userID}

	if filter.Type != nil {
		query += " AND tx_type = ?"
		args = append(args, *filter.Type)
	}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.DateFrom != "" {
		query += " AND tx_date >= ?"
		args = append(args, filter.DateFrom)
	}
	if filter.DateTo != "" {
		query += " AND tx_date <= ?"
		args = append(args, filter.DateTo)
	}
	query += " ORDER BY tx_date DESC, created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := repository.database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var transaction models.Transaction
		if err := rows.Scan(&transaction.ID, &transaction.UserID, &transaction.Amount,
			&transaction.Type, &transaction.Category, &transaction.Description,
			&transaction.Date, &transaction.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

func (repository *SQLiteFinanceRepository) CreateTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, error) {
	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}
	transaction.CreatedAt = time.Now()
	if transaction.Date == "" {
		transaction.Date = transaction.CreatedAt.Format("2006-01-02")
	}
	if transaction.Type == "" {
		transaction.Type = models.TransactionExpense
	}

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, amount, tx_type, category, description, tx_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		transaction.ID, transaction.UserID, transaction.Amount, transaction.Type,
		transaction.Category, transaction.Description, transaction.Date, transaction.CreatedAt,
	)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("creating transaction: %w", err)
	}
	return transaction, nil
}

func (repository *SQLiteFinanceRepository) DeleteTransaction(ctx context.Context, id string, userID string) error {
	_, err := repository.database.ExecContext(ctx,
		"DELETE FROM transactions WHERE id = ? AND user_id = ?", id, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	return nil
}

func (repository *SQLiteFinanceRepository) SumByCategory(ctx context.Context, userID string, category string, from string, to string) (float64, error) {
	var total float64
	err := repository.database.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions
		WHERE user_id = ? AND tx_type = 'expense' AND LOWER(category) = ? AND tx_date >= ? AND tx_date <= ?`,
		userID, strings.ToLower(category), from, to,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing transactions: %w", err)
	}
	return total, nil
}

func (repository *SQLiteFinanceRepository) FindBudgets(ctx context.Context, userID string) ([]models.Budget, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, user_id, category, monthly_limit, created_at, updated_at
		FROM budgets WHERE user_id = ? ORDER BY category ASC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding budgets: %w", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var budget models.Budget
		if err := rows.Scan(&budget.ID, &budget.UserID, &budget.Category,
			&budget.MonthlyLimit, &budget.CreatedAt, &budget.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

func (repository *SQLiteFinanceRepository) UpsertBudget(ctx context.Context, budget models.Budget) (models.Budget, error) {
	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	now := time.Now()
	budget.CreatedAt = now
	budget.UpdatedAt = now

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO budgets (id, user_id, category, monthly_limit, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, category) DO UPDATE SET
			monthly_limit = excluded.monthly_limit,
			updated_at = excluded.updated_at`,
		budget.ID, budget.UserID, budget.Category, budget.MonthlyLimit,
		budget.CreatedAt, budget.UpdatedAt,
	)
	if err != nil {
		return models.Budget{}, fmt.Errorf("upserting budget: %w", err)
	}

	// On conflict the row keeps its original id, so re-read what was stored.
	var saved models.Budget
	err = repository.database.QueryRowContext(ctx,
		`SELECT id, user_id, category, monthly_limit, created_at, updated_at
		FROM budgets WHERE user_id = ? AND category = ?`,
		budget.UserID, budget.Category,
	).Scan(&saved.ID, &saved.UserID, &saved.Category,
		&saved.MonthlyLimit, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return models.Budget{}, fmt.Errorf("reading upserted budget: %w", err)
	}
	return saved, nil
}

func (repository *SQLiteFinanceRepository) DeleteBudget(ctx context.Context, id string, userID string) error {
	_, err := repository.database.ExecContext(ctx,
		"DELETE FROM budgets WHERE id = ? AND user_id = ?", id, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}
	return nil
}
