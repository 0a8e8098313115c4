package ports

import (
	"context"

	"github.com/accessflow/accessflow/internal/core/domain"
)

// UserRepository defines the interface for user account persistence.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
