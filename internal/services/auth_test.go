package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/config"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/services"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/testutil"
)

func newAuthService(t *testing.T) (*services.AuthService, *repository.SQLiteUserRepository) {
	t.Helper()
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	cfg := config.Config{SessionSecret: "0123456789abcdef0123456789abcdef"}
	return services.NewAuthService(cfg, userRepo), userRepo
}

func TestAuthService_Register_FirstUserIsAdmin(t *testing.T) {
	service, _ := newAuthService(t)
	ctx := context.Background()

	first, err := service.Register(ctx, "ana@example.com", "Ana", "secreto123")
	if err != nil {
		t.Fatalf("registering first user: %v", err)
	}
	if first.Role != models.RoleAdmin {
		t.Errorf("expected admin role for the first account, got '%s'", first.Role)
	}

	second, err := service.Register(ctx, "luis@example.com", "Luis", "secreto123")
	if err != nil {
		t.Fatalf("registering second user: %v", err)
	}
	if second.Role != models.RoleMember {
		t.Errorf("expected member role, got '%s'", second.Role)
	}
}

func TestAuthService_Login(t *testing.T) {
	service, _ := newAuthService(t)
	ctx := context.Background()

	service.Register(ctx, "ana@example.com", "Ana", "secreto123")

	user, err := service.Login(ctx, "ana@example.com", "secreto123")
	if err != nil {
		t.Fatalf("logging in: %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Errorf("expected logged-in user, got '%s'", user.Email)
	}

	if _, err := service.Login(ctx, "ana@example.com", "incorrecta"); !errors.Is(err, services.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for a wrong password, got %v", err)
	}
	if _, err := service.Login(ctx, "nadie@example.com", "secreto123"); !errors.Is(err, services.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for an unknown email, got %v", err)
	}
}

func TestGenerateToken(t *testing.T) {
	first := services.GenerateToken()
	second := services.GenerateToken()

	if len(first) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(first))
	}
	if first == second {
		t.Error("expected distinct tokens")
	}
}
