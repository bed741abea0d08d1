package services_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/services"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/testutil"
)

// stubCompleter returns a canned reply instead of calling the API.
type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Complete(ctx context.Context, system string, user string) (string, error) {
	return s.reply, s.err
}

func newVoiceService(t *testing.T, db *sql.DB, completer *stubCompleter) *services.VoiceService {
	t.Helper()
	mealRepo := repository.NewMealRepository(db)
	goalRepo := repository.NewNutritionGoalRepository(db)
	nutrition := services.NewNutritionService(mealRepo, goalRepo)
	return services.NewVoiceService(
		completer,
		nutrition,
		repository.NewTaskRepository(db),
		repository.NewHabitRepository(db),
		repository.NewWorkoutRepository(db),
		repository.NewSleepRepository(db),
		repository.NewNoteRepository(db),
	)
}

func TestVoiceService_ConfidenceGate(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	service := newVoiceService(t, db, &stubCompleter{})
	ctx := context.Background()

	user := createUser(t, db)

	result := service.DispatchEnvelope(ctx, user.ID, services.Envelope{
		Module:     "tasks",
		Data:       []byte(`{"title": "Llamar al dentista"}`),
		Confidence: 0.3,
	})
	if result.Success {
		t.Error("expected failure below the confidence threshold")
	}

	// Nothing was written.
	tasks, _ := repository.NewTaskRepository(db).FindAll(ctx, user.ID, repository.TaskFilter{})
	if len(tasks) != 0 {
		t.Errorf("expected no task created, got %d", len(tasks))
	}
}

func TestVoiceService_Process_CreatesTask(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	completer := &stubCompleter{
		reply: `{"module": "tasks", "action": "create", "data": {"title": "Llamar al dentista", "priority": "high", "due_date": "2026-09-01"}, "confidence": 0.92, "summary": "Tarea para el dentista"}`,
	}
	service := newVoiceService(t, db, completer)
	ctx := context.Background()

	user := createUser(t, db)

	result := service.Process(ctx, user.ID, "recuérdame llamar al dentista mañana")
	if !result.Success {
		t.Fatalf("expected success, got message '%s'", result.Message)
	}
	if result.Message != "Tarea para el dentista" {
		t.Errorf("expected the summary as message, got '%s'", result.Message)
	}

	tasks, _ := repository.NewTaskRepository(db).FindAll(ctx, user.ID, repository.TaskFilter{})
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Priority != models.PriorityHigh {
		t.Errorf("expected high priority, got '%s'", tasks[0].Priority)
	}
	if tasks[0].DueDate == nil || *tasks[0].DueDate != "2026-09-01" {
		t.Error("expected due date 2026-09-01")
	}
}

func TestVoiceService_Process_NutritionEnvelope(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	completer := &stubCompleter{
		reply: `{"module": "nutrition", "action": "log", "data": {"meal_type": "breakfast", "food": "dos huevos", "calories": 140, "protein": 12}, "confidence": 0.9}`,
	}
	service := newVoiceService(t, db, completer)
	ctx := context.Background()

	user := createUser(t, db)

	result := service.Process(ctx, user.ID, "comí dos huevos en el desayuno")
	if !result.Success {
		t.Fatalf("expected success, got '%s'", result.Message)
	}

	mealRepo := repository.NewMealRepository(db)
	meals, _ := mealRepo.FindAll(ctx, user.ID, repository.MealFilter{})
	if len(meals) != 1 {
		t.Fatalf("expected 1 meal, got %d", len(meals))
	}
	if meals[0].Type != models.MealTypeBreakfast {
		t.Errorf("expected breakfast, got '%s'", meals[0].Type)
	}
	if meals[0].Totals.Calories != 140 {
		t.Errorf("expected 140 calories cached, got %v", meals[0].Totals.Calories)
	}
}

func TestVoiceService_Process_MalformedReply(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	service := newVoiceService(t, db, &stubCompleter{reply: "no soy JSON"})
	ctx := context.Background()

	user := createUser(t, db)

	result := service.Process(ctx, user.ID, "algo")
	if result.Success {
		t.Error("expected failure on a malformed reply")
	}
}

func TestVoiceService_UnknownModule(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	service := newVoiceService(t, db, &stubCompleter{})
	ctx := context.Background()

	user := createUser(t, db)

	result := service.DispatchEnvelope(ctx, user.ID, services.Envelope{
		Module:     "finanzas",
		Confidence: 0.9,
	})
	if result.Success {
		t.Error("expected failure for an unknown module")
	}
}

func TestVoiceService_HabitEnvelope_NoMatch(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	service := newVoiceService(t, db, &stubCompleter{})
	ctx := context.Background()

	user := createUser(t, db)

	result := service.DispatchEnvelope(ctx, user.ID, services.Envelope{
		Module:     "habits",
		Data:       []byte(`{"habit_name": "yoga", "value": 1}`),
		Confidence: 0.8,
	})
	if result.Success {
		t.Error("expected failure when no habit matches")
	}
}
