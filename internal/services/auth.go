package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/config"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/bcrypt"
)

var ErrUnauthorized = errors.New("Unauthorized")

const sessionCookieName = "lifeos_session"

type SessionData struct {
	UserID string `json:"user_id"`
}

type AuthService struct {
	secureCookie *securecookie.SecureCookie
	userRepo     repository.UserRepository
}

func NewAuthService(cfg config.Config, userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		secureCookie: securecookie.New([]byte(cfg.SessionSecret), nil),
		userRepo:     userRepo,
	}
}

func (service *AuthService) Register(ctx context.Context, email string, name string, password string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}

	// First account becomes the admin.
	role := models.RoleMember
	count, err := service.userRepo.Count(ctx)
	if err == nil && count == 0 {
		role = models.RoleAdmin
	}

	user, err := service.userRepo.Create(ctx, models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		return models.User{}, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (service *AuthService) Login(ctx context.Context, email string, password string) (models.User, error) {
	user, err := service.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return models.User{}, ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrUnauthorized
	}
	return user, nil
}

func (service *AuthService) SetSession(w http.ResponseWriter, userID string) error {
	encoded, err := service.secureCookie.Encode(sessionCookieName, SessionData{UserID: userID})
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
	return nil
}

func (service *AuthService) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

func (service *AuthService) GetCurrentUser(r *http.Request) (models.User, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return models.User{}, ErrUnauthorized
	}

	var data SessionData
	if err := service.secureCookie.Decode(sessionCookieName, cookie.Value, &data); err != nil {
		return models.User{}, ErrUnauthorized
	}

	user, err := service.userRepo.FindByID(r.Context(), data.UserID)
	if err != nil {
		return models.User{}, ErrUnauthorized
	}
	return user, nil
}

func GenerateToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
