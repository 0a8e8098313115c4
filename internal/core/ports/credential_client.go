package ports

import (
	"context"

	"github.com/accessflow/accessflow/internal/core/domain"
)

// CredentialClient submits credentials to the external credential service.
type CredentialClient interface {
	// Authenticate exchanges email and password for a session. Failures
	// carry domain.ErrInvalidCredentials or domain.ErrNetwork in their
	// error chain, with a user-presentable message.
	Authenticate(ctx context.Context, email, password string) (*domain.Session, error)
}
