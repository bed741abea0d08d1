package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/middleware"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/go-chi/chi/v5"
)

type FinanceHandler struct {
	financeRepo repository.FinanceRepository
}

func NewFinanceHandler(financeRepo repository.FinanceRepository) *FinanceHandler {
	return &FinanceHandler{financeRepo: financeRepo}
}

func (handler *FinanceHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	filter := repository.TransactionFilter{
		Category: r.URL.Query().Get("category"),
		DateFrom: r.URL.Query().Get("from"),
		DateTo:   r.URL.Query().Get("to"),
	}
	if txType := r.URL.Query().Get("type"); txType != "" {
		t := models.TransactionType(txType)
		filter.Type = &t
	}

	transactions, err := handler.financeRepo.FindTransactions(ctx, user.ID, filter)
	if err != nil {
		slog.Error("finding transactions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}
	writeJSON(w, http.StatusOK, transactions)
}

func (handler *FinanceHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var transaction models.Transaction
	if err := decodeJSON(r, &transaction); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if transaction.Amount == 0 {
		writeError(w, http.StatusBadRequest, "amount is required")
		return
	}
	transaction.UserID = user.ID

	created, err := handler.financeRepo.CreateTransaction(ctx, transaction)
	if err != nil {
		slog.Error("creating transaction", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create transaction")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (handler *FinanceHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	if err := handler.financeRepo.DeleteTransaction(ctx, chi.URLParam(r, "id"), user.ID); err != nil {
		slog.Error("deleting transaction", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ListBudgets recomputes each budget's spent figure from the current
// month's matching expense transactions on every read; nothing is cached.
func (handler *FinanceHandler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	budgets, err := handler.financeRepo.FindBudgets(ctx, user.ID)
	if err != nil {
		slog.Error("finding budgets", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load budgets")
		return
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	monthEnd := now.Format("2006-01-02")

	for i := range budgets {
		spent, err := handler.financeRepo.SumByCategory(ctx, user.ID, budgets[i].Category, monthStart, monthEnd)
		if err != nil {
			slog.Error("summing budget spend", "category", budgets[i].Category, "error", err)
			continue
		}
		budgets[i].Spent = spent
	}
	writeJSON(w, http.StatusOK, budgets)
}

func (handler *FinanceHandler) UpsertBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var budget models.Budget
	if err := decodeJSON(r, &budget); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if budget.Category == "" {
		writeError(w, http.StatusBadRequest, "category is required")
		return
	}
	budget.UserID = user.ID

	saved, err := handler.financeRepo.UpsertBudget(ctx, budget)
	if err != nil {
		slog.Error("saving budget", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save budget")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (handler *FinanceHandler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	if err := handler.financeRepo.DeleteBudget(ctx, chi.URLParam(r, "id"), user.ID); err != nil {
		slog.Error("deleting budget", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete budget")
		return
	}
	w.WriteHeader(http.StatusOK)
}
