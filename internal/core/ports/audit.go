package ports

import (
	"context"
	"time"

	"github.com/accessflow/accessflow/internal/core/domain"
)

// AuditEntryInput is the DTO handed from the auth layer to the audit pipeline.
type AuditEntryInput struct {
	Actor     string
	Action    string
	Outcome   string
	Detail    string
	Timestamp time.Time
}

// AuditSink accepts audit events for asynchronous recording.
type AuditSink interface {
	Enqueue(event AuditEntryInput)
}

// AuditService records audit events and serves the audit panel.
type AuditService interface {
	Record(ctx context.Context, event AuditEntryInput) error
	Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

// AuditRepository defines the interface for audit trail persistence.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	FindRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}
