package repository_test

import (
	"context"
	"testing"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/testutil"
)

func TestFinanceRepository_SumByCategory(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	financeRepo := repository.NewFinanceRepository(db)
	ctx := context.Background()

	user := createTestUser(t, userRepo)

	financeRepo.CreateTransaction(ctx, models.Transaction{
		UserID: user.ID, Amount: 45.50, Category: "Comida", Date: "2026-08-10",
	})
	financeRepo.CreateTransaction(ctx, models.Transaction{
		UserID: user.ID, Amount: 30, Category: "comida", Date: "2026-08-15",
	})
	// Income in the same category must not count.
	financeRepo.CreateTransaction(ctx, models.Transaction{
		UserID: user.ID, Amount: 1000, Type: models.TransactionIncome,
		Category: "Comida", Date: "2026-08-12",
	})
	// Outside the range.
	financeRepo.CreateTransaction(ctx, models.Transaction{
		UserID: user.ID, Amount: 99, Category: "Comida", Date: "2026-07-01",
	})

	total, err := financeRepo.SumByCategory(ctx, user.ID, "Comida", "2026-08-01", "2026-08-31")
	if err != nil {
		t.Fatalf("summing by category: %v", err)
	}
	if total != 75.50 {
		t.Errorf("expected 75.50, got %v", total)
	}
}

func TestFinanceRepository_CreateTransaction_Defaults(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	financeRepo := repository.NewFinanceRepository(db)
	ctx := context.Background()

	user := createTestUser(t, userRepo)

	transaction, err := financeRepo.CreateTransaction(ctx, models.Transaction{
		UserID: user.ID, Amount: 12, Category: "Transporte",
	})
	if err != nil {
		t.Fatalf("creating transaction: %v", err)
	}
	if transaction.Type != models.TransactionExpense {
		t.Errorf("expected default type expense, got '%s'", transaction.Type)
	}
	if transaction.Date == "" {
		t.Error("expected default date to be set")
	}
}

func TestFinanceRepository_UpsertBudget(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	financeRepo := repository.NewFinanceRepository(db)
	ctx := context.Background()

	user := createTestUser(t, userRepo)

	first, err := financeRepo.UpsertBudget(ctx, models.Budget{
		UserID: user.ID, Category: "Comida", MonthlyLimit: 300,
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := financeRepo.UpsertBudget(ctx, models.Budget{
		UserID: user.ID, Category: "Comida", MonthlyLimit: 350,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected the second upsert to return the stored id %s, got %s", first.ID, second.ID)
	}

	budgets, err := financeRepo.FindBudgets(ctx, user.ID)
	if err != nil {
		t.Fatalf("finding budgets: %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("expected 1 budget, got %d", len(budgets))
	}
	if budgets[0].ID != first.ID {
		t.Errorf("expected the row to keep id %s, got %s", first.ID, budgets[0].ID)
	}
	if budgets[0].MonthlyLimit != 350 {
		t.Errorf("expected updated limit 350, got %v", budgets[0].MonthlyLimit)
	}
}
