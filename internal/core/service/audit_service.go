package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/accessflow/accessflow/internal/core/domain"
	"github.com/accessflow/accessflow/internal/core/ports"
)

const (
	defaultAuditPage = 50
	maxAuditPage     = 500
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService backed by repo.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists a single audit event.
func (s *auditService) Record(ctx context.Context, in ports.AuditEntryInput) error {
	entry := &domain.AuditEntry{
		Actor:     in.Actor,
		Action:    in.Action,
		Outcome:   in.Outcome,
		Detail:    in.Detail,
		Timestamp: in.Timestamp,
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}

	s.log.Debug().
		Str("actor", entry.Actor).
		Str("action", entry.Action).
		Str("outcome", entry.Outcome).
		Msg("audit entry recorded")
	return nil
}

// Recent returns the newest entries, newest first. Limit is clamped to a
// sane page size.
func (s *auditService) Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 || limit > maxAuditPage {
		limit = defaultAuditPage
	}
	return s.repo.FindRecent(ctx, limit)
}
