package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/webinarhq/webinar-platform/internal/domain/entity"
	"github.com/webinarhq/webinar-platform/internal/infrastructure/memory"
	"github.com/webinarhq/webinar-platform/pkg/helpers"
)

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	hash, err := helpers.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	users := memory.NewUserRepository(entity.User{
		ID:       "alice",
		Email:    "alice@example.com",
		Password: hash,
		Name:     "Alice",
	})
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	svc := NewAuthService(users, jwt, nil, nil)

	t.Run("valid credentials issue a token pair", func(t *testing.T) {
		u, pair, err := svc.Login(context.Background(), "alice@example.com", "password123")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if u.ID != "alice" {
			t.Fatalf("expected alice, got %q", u.ID)
		}
		if pair.AccessToken == "" || pair.RefreshToken == "" {
			t.Fatalf("expected both tokens to be set")
		}

		claims, err := jwt.ParseAccessToken(pair.AccessToken)
		if err != nil {
			t.Fatalf("parse access token: %v", err)
		}
		if claims.UserID != "alice" {
			t.Fatalf("expected token for alice, got %q", claims.UserID)
		}
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "password123")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("refresh rotates the pair", func(t *testing.T) {
		_, pair, err := svc.Login(context.Background(), "alice@example.com", "password123")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		next, err := svc.Refresh(context.Background(), pair.RefreshToken)
		if err != nil {
			t.Fatalf("refresh: %v", err)
		}
		if next.AccessToken == "" {
			t.Fatalf("expected a fresh access token")
		}
	})

	t.Run("access token is not a valid refresh token", func(t *testing.T) {
		_, pair, err := svc.Login(context.Background(), "alice@example.com", "password123")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if _, err := svc.Refresh(context.Background(), pair.AccessToken); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
