package ports

import (
	"context"

	"github.com/consumershield/claims-core/internal/core/domain"
)

// RegisterInput carries the fields for account creation.
type RegisterInput struct {
	Email    string
	Password string
	Role     string
	TenantID string
	BranchID string
}

// AuthService handles registration and login for the claims portal.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns a signed session token and the matched user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
