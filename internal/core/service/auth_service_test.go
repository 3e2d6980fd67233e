package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/consumershield/claims-core/internal/core/domain"
	"github.com/consumershield/claims-core/internal/core/ports"
)

type stubAuthRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{byEmail: make(map[string]*domain.User)}
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	clone := *user
	clone.ID = "user_" + strconv.Itoa(r.nextID)
	r.byEmail[user.Email] = &clone
	return &clone, nil
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "maria@example.com",
		Password: "s3cret-pass",
		Role:     "member",
		TenantID: "t1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID == "" {
		t.Error("expected a user id")
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Error("password must be stored hashed")
	}

	token, logged, err := svc.Login(context.Background(), "maria@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != user.ID {
		t.Errorf("logged-in user id %q, want %q", logged.ID, user.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["tenant_id"] != "t1" {
		t.Errorf("tenant_id claim = %v, want t1", claims["tenant_id"])
	}
	if claims["role"] != "member" {
		t.Errorf("role claim = %v, want member", claims["role"])
	}
}

func TestAuthService_RegisterRejectsAdminRoles(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "test-secret", time.Hour)

	for _, role := range []string{"admin", "tenant_admin", "super_admin", "branch_manager", "root", ""} {
		_, err := svc.Register(context.Background(), ports.RegisterInput{
			Email:    "x@example.com",
			Password: "pass",
			Role:     role,
			TenantID: "t1",
		})
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("role %q: expected ErrInvalidCredentials, got %v", role, err)
		}
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	input := ports.RegisterInput{Email: "dup@example.com", Password: "pass", Role: "staff", TenantID: "t1"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "maria@example.com", Password: "right", Role: "member", TenantID: "t1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, err = svc.Login(context.Background(), "maria@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "test-secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "pass")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
