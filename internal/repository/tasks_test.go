package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/testutil"
)

func TestTaskRepository_Create_Defaults(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	ctx := context.Background()

	user := createTestUser(t, userRepo)

	task, err := taskRepo.Create(ctx, models.Task{UserID: user.ID, Title: "Comprar leche"})
	if err != nil {
		t.Fatalf("creating task: %v", err)
	}
	if task.Status != models.TaskStatusPending {
		t.Errorf("expected pending status, got '%s'", task.Status)
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("expected medium priority, got '%s'", task.Priority)
	}
}

func TestTaskRepository_FindAll_StatusFilter(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	ctx := context.Background()

	user := createTestUser(t, userRepo)

	taskRepo.Create(ctx, models.Task{UserID: user.ID, Title: "Pendiente"})
	done, _ := taskRepo.Create(ctx, models.Task{UserID: user.ID, Title: "Hecha"})

	now := time.Now()
	done.Status = models.TaskStatusCompleted
	done.CompletedAt = &now
	if err := taskRepo.Update(ctx, done); err != nil {
		t.Fatalf("updating task: %v", err)
	}

	pending := models.TaskStatusPending
	tasks, err := taskRepo.FindAll(ctx, user.ID, repository.TaskFilter{Status: &pending})
	if err != nil {
		t.Fatalf("finding tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 pending task, got %d", len(tasks))
	}
	if tasks[0].Title != "Pendiente" {
		t.Errorf("expected 'Pendiente', got '%s'", tasks[0].Title)
	}
}

func TestTaskRepository_FindAll_OpenStatuses(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	ctx := context.Background()

	user := createTestUser(t, userRepo)

	taskRepo.Create(ctx, models.Task{UserID: user.ID, Title: "A"})
	inProgress, _ := taskRepo.Create(ctx, models.Task{UserID: user.ID, Title: "B"})
	cancelled, _ := taskRepo.Create(ctx, models.Task{UserID: user.ID, Title: "C"})

	inProgress.Status = models.TaskStatusInProgress
	taskRepo.Update(ctx, inProgress)
	cancelled.Status = models.TaskStatusCancelled
	taskRepo.Update(ctx, cancelled)

	tasks, err := taskRepo.FindAll(ctx, user.ID, repository.TaskFilter{
		Statuses: []models.TaskStatus{models.TaskStatusPending, models.TaskStatusInProgress},
	})
	if err != nil {
		t.Fatalf("finding tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("expected 2 open tasks, got %d", len(tasks))
	}
}

func TestTaskRepository_FindAll_DueDate(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	ctx := context.Background()

	user := createTestUser(t, userRepo)

	today := "2026-08-30"
	tomorrow := "2026-08-31"
	taskRepo.Create(ctx, models.Task{UserID: user.ID, Title: "Hoy", DueDate: &today})
	taskRepo.Create(ctx, models.Task{UserID: user.ID, Title: "Mañana", DueDate: &tomorrow})
	taskRepo.Create(ctx, models.Task{UserID: user.ID, Title: "Sin fecha"})

	tasks, err := taskRepo.FindAll(ctx, user.ID, repository.TaskFilter{DueDate: today})
	if err != nil {
		t.Fatalf("finding tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task due today, got %d", len(tasks))
	}
	if tasks[0].Title != "Hoy" {
		t.Errorf("expected 'Hoy', got '%s'", tasks[0].Title)
	}
}

func TestTaskRepository_ScopedToUser(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, userRepo)
	other := createTestUser(t, userRepo)

	task, _ := taskRepo.Create(ctx, models.Task{UserID: owner.ID, Title: "Privada"})

	if _, err := taskRepo.FindByID(ctx, task.ID, other.ID); err == nil {
		t.Error("expected error reading another user's task")
	}

	tasks, _ := taskRepo.FindAll(ctx, other.ID, repository.TaskFilter{})
	if len(tasks) != 0 {
		t.Errorf("expected no tasks for the other user, got %d", len(tasks))
	}
}
