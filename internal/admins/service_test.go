package admins

import (
	"context"
	"errors"
	"testing"

	"scheduler-backend/internal/shared/auth"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	admin, err := svc.Register(context.Background(), "ops-lead", "correct horse battery", "Ops Lead")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if admin.PasswordHash == "correct horse battery" {
		t.Fatal("password stored in plaintext")
	}

	token, got, err := svc.Login(context.Background(), "ops-lead", "correct horse battery")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != admin.ID {
		t.Errorf("admin id: got %s, want %s", got.ID, admin.ID)
	}

	claims, err := auth.VerifyJWT(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.Role != auth.RoleAdmin {
		t.Errorf("role: got %s, want %s", claims.Role, auth.RoleAdmin)
	}
	if claims.Sub != "admin:"+admin.ID {
		t.Errorf("sub: got %s", claims.Sub)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if _, err := svc.Register(context.Background(), "", "long enough password", ""); err == nil {
		t.Error("blank username accepted")
	}
	if _, err := svc.Register(context.Background(), "ops", "short", ""); err == nil {
		t.Error("short password accepted")
	}

	if _, err := svc.Register(context.Background(), "ops", "long enough password", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "ops", "another password here", ""); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate username: got %v, want %v", err, ErrConflict)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Register(context.Background(), "ops", "correct password 1", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "ops", "wrong password 000"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("wrong password: got %v, want %v", err, ErrBadCredentials)
	}
	if _, _, err := svc.Login(context.Background(), "nobody", "correct password 1"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("unknown user: got %v, want %v", err, ErrBadCredentials)
	}
}
