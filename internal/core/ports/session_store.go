package ports

import (
	"context"

	"github.com/accessflow/accessflow/internal/core/domain"
)

// SessionStore persists the active session across application restarts.
// Implementations must write token and user together or not at all: a
// reader never observes a partial session.
type SessionStore interface {
	// Save overwrites any previously persisted session.
	Save(ctx context.Context, session domain.Session) error
	// Load returns (nil, nil) when no session is persisted. It performs no
	// validation of token freshness.
	Load(ctx context.Context) (*domain.Session, error)
	// Clear is idempotent: clearing an empty store is a no-op, not an error.
	Clear(ctx context.Context) error
}
