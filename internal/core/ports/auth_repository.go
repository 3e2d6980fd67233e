package ports

import (
	"context"

	"github.com/consumershield/claims-core/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
