package ports

import (
	"context"

	"github.com/accessflow/accessflow/internal/core/domain"
)

// AuthService verifies credentials and issues bearer tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Register(ctx context.Context, email, name, password string, role domain.Role) (*domain.User, error)
}
