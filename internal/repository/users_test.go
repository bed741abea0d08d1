package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/testutil"
)

var testUserCounter int

func createTestUser(t *testing.T, repo *repository.SQLiteUserRepository) models.User {
	t.Helper()
	testUserCounter++
	user, err := repo.Create(context.Background(), models.User{
		Email:        fmt.Sprintf("test-%d@example.com", testUserCounter),
		Name:         "Test User",
		PasswordHash: "not-a-real-hash",
		Role:         models.RoleMember,
	})
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return user
}

func TestUserRepository_CreateAndFindByEmail(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()

	created, err := userRepo.Create(ctx, models.User{
		Email:        "ana@example.com",
		Name:         "Ana",
		PasswordHash: "hash",
		Role:         models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected non-empty ID")
	}

	found, err := userRepo.FindByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("finding user: %v", err)
	}
	if found.Name != "Ana" {
		t.Errorf("expected name 'Ana', got '%s'", found.Name)
	}
	if found.Role != models.RoleAdmin {
		t.Errorf("expected admin role, got '%s'", found.Role)
	}
}

func TestUserRepository_Count(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()

	count, err := userRepo.Count(ctx)
	if err != nil {
		t.Fatalf("counting users: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 users, got %d", count)
	}

	createTestUser(t, userRepo)
	createTestUser(t, userRepo)

	count, err = userRepo.Count(ctx)
	if err != nil {
		t.Fatalf("counting users: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 users, got %d", count)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()

	_, err := userRepo.Create(ctx, models.User{Email: "dup@example.com", Name: "First"})
	if err != nil {
		t.Fatalf("creating first user: %v", err)
	}

	_, err = userRepo.Create(ctx, models.User{Email: "dup@example.com", Name: "Second"})
	if err == nil {
		t.Error("expected error creating user with duplicate email")
	}
}
