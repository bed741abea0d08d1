package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/middleware"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/services"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/testutil"
)

type noopCompleter struct{}

func (noopCompleter) Complete(ctx context.Context, system string, user string) (string, error) {
	return "{}", nil
}

func TestQuickAddHandler_QuickAdd(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	mealRepo := repository.NewMealRepository(db)
	goalRepo := repository.NewNutritionGoalRepository(db)
	nutrition := services.NewNutritionService(mealRepo, goalRepo)
	voice := services.NewVoiceService(noopCompleter{}, nutrition, taskRepo, habitRepo,
		repository.NewWorkoutRepository(db), repository.NewSleepRepository(db), repository.NewNoteRepository(db))
	quickAdd := services.NewQuickAddService(taskRepo, habitRepo, nutrition, voice)
	handler := NewQuickAddHandler(quickAdd, voice)
	ctx := context.Background()

	user, err := userRepo.Create(ctx, models.User{Email: "qa@example.com", Name: "QA"})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, "/api/quick-add",
		strings.NewReader(`{"text": "tarea: comprar leche"}`))
	request = request.WithContext(context.WithValue(request.Context(), middleware.UserContextKey, user))
	recorder := httptest.NewRecorder()
	handler.QuickAdd(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var result services.ActionResult
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !result.Success {
		t.Errorf("expected success, got '%s'", result.Message)
	}

	tasks, _ := taskRepo.FindAll(ctx, user.ID, repository.TaskFilter{})
	if len(tasks) != 1 || tasks[0].Title != "comprar leche" {
		t.Error("expected the task to be created")
	}
}

func TestQuickAddHandler_QuickAdd_EmptyText(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	mealRepo := repository.NewMealRepository(db)
	goalRepo := repository.NewNutritionGoalRepository(db)
	nutrition := services.NewNutritionService(mealRepo, goalRepo)
	voice := services.NewVoiceService(noopCompleter{}, nutrition, taskRepo, habitRepo,
		repository.NewWorkoutRepository(db), repository.NewSleepRepository(db), repository.NewNoteRepository(db))
	quickAdd := services.NewQuickAddService(taskRepo, habitRepo, nutrition, voice)
	handler := NewQuickAddHandler(quickAdd, voice)
	ctx := context.Background()

	user, _ := userRepo.Create(ctx, models.User{Email: "qa2@example.com", Name: "QA"})

	request := httptest.NewRequest(http.MethodPost, "/api/quick-add", strings.NewReader(`{}`))
	request = request.WithContext(context.WithValue(request.Context(), middleware.UserContextKey, user))
	recorder := httptest.NewRecorder()
	handler.QuickAdd(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty text, got %d", recorder.Code)
	}
}
