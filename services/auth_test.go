package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lizet96/consultorio-backend/models"
	"github.com/lizet96/consultorio-backend/repository"
	"github.com/lizet96/consultorio-backend/repository/repotest"
)

func newTestAuth(t *testing.T) (*AuthService, *CredentialService, *repotest.Store) {
	t.Helper()
	store := repotest.New()
	creds := NewCredentialService(store.Tokens(), testSecret, time.Hour)
	return NewAuthService(store.Usuarios(), creds), creds, store
}

func TestAuthService_Register(t *testing.T) {
	svc, creds, store := newTestAuth(t)
	ctx := context.Background()

	u, token, err := svc.Register(ctx, models.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secreto123"})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected user id to be assigned")
	}
	if u.Password == "secreto123" {
		t.Error("password must be stored hashed")
	}
	if err := CheckPassword(u.Password, "secreto123"); err != nil {
		t.Errorf("stored hash does not match: %v", err)
	}

	id, err := creds.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if id.UserID != u.ID {
		t.Errorf("token belongs to %d, want %d", id.UserID, u.ID)
	}

	taken, err := svc.EmailTaken(ctx, "ana@example.com")
	if err != nil || !taken {
		t.Errorf("EmailTaken() = %v, %v; want true, nil", taken, err)
	}
	if store.TokenCount(u.ID) != 1 {
		t.Error("expected one token after register")
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()
	req := models.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secreto123"}

	if _, _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if _, _, err := svc.Register(ctx, req); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, _, store := newTestAuth(t)
	ctx := context.Background()
	registered, _, _ := svc.Register(ctx, models.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secreto123"})

	u, token, err := svc.Login(ctx, models.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if u.ID != registered.ID || token == "" {
		t.Errorf("unexpected login result: %+v %q", u, token)
	}
	if store.TokenCount(u.ID) != 2 {
		t.Errorf("expected 2 tokens after login, got %d", store.TokenCount(u.ID))
	}

	tests := []models.LoginRequest{
		{Email: "ana@example.com", Password: "incorrecta"},
		{Email: "nadie@example.com", Password: "secreto123"},
	}
	for _, req := range tests {
		if _, _, err := svc.Login(ctx, req); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%s) expected ErrInvalidCredentials, got %v", req.Email, err)
		}
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, creds, store := newTestAuth(t)
	ctx := context.Background()
	u, first, _ := svc.Register(ctx, models.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secreto123"})
	_, second, _ := svc.Login(ctx, models.LoginRequest{Email: "ana@example.com", Password: "secreto123"})

	caller, err := creds.Verify(ctx, second)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if err := svc.Logout(ctx, caller); err != nil {
		t.Fatalf("Logout() error: %v", err)
	}
	if store.TokenCount(u.ID) != 0 {
		t.Error("expected every token revoked")
	}
	if _, err := creds.Verify(ctx, first); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected first token revoked, got %v", err)
	}
}

func TestAuthService_EmailIgnoresCase(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, models.RegisterRequest{Name: "Ana", Email: "Ana@Example.com", Password: "secreto123"})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	taken, err := svc.EmailTaken(ctx, "ana@example.com")
	if err != nil || !taken {
		t.Errorf("EmailTaken() = %v, %v; want true, nil", taken, err)
	}
	_, _, err = svc.Register(ctx, models.RegisterRequest{Name: "Otra", Email: "ANA@EXAMPLE.COM", Password: "secreto123"})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	got, _, err := svc.Login(ctx, models.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("logged in as %d, want %d", got.ID, u.ID)
	}
}
