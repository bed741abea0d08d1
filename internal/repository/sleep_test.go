package repository_test

import (
	"context"
	"testing"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/testutil"
)

func TestSleepRepository_Upsert_OverwritesSameDate(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	sleepRepo := repository.NewSleepRepository(db)
	ctx := context.Background()

	user := createTestUser(t, userRepo)

	sleepRepo.Upsert(ctx, models.SleepLog{
		UserID: user.ID, Date: "2026-08-30", Hours: 6, Quality: 2,
	})
	updated, err := sleepRepo.Upsert(ctx, models.SleepLog{
		UserID: user.ID, Date: "2026-08-30", Hours: 7.5, Quality: 4,
	})
	if err != nil {
		t.Fatalf("upserting sleep log: %v", err)
	}
	if updated.Hours != 7.5 {
		t.Errorf("expected hours 7.5, got %v", updated.Hours)
	}

	logs, err := sleepRepo.FindRange(ctx, user.ID, "2026-08-01", "2026-08-31")
	if err != nil {
		t.Fatalf("finding range: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("expected a single row per date, got %d", len(logs))
	}
}

func TestSleepRepository_FindRange(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	sleepRepo := repository.NewSleepRepository(db)
	ctx := context.Background()

	user := createTestUser(t, userRepo)

	sleepRepo.Upsert(ctx, models.SleepLog{UserID: user.ID, Date: "2026-08-28", Hours: 8})
	sleepRepo.Upsert(ctx, models.SleepLog{UserID: user.ID, Date: "2026-08-29", Hours: 6})
	sleepRepo.Upsert(ctx, models.SleepLog{UserID: user.ID, Date: "2026-07-01", Hours: 5})

	logs, err := sleepRepo.FindRange(ctx, user.ID, "2026-08-01", "2026-08-31")
	if err != nil {
		t.Fatalf("finding range: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs in August, got %d", len(logs))
	}
	if logs[0].Date != "2026-08-28" {
		t.Errorf("expected ascending order, got '%s' first", logs[0].Date)
	}
}
