package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskdeck/employee-task-api/internal/api/metrics"
	"github.com/taskdeck/employee-task-api/internal/core/domain"
	"github.com/taskdeck/employee-task-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists entries to the audit
// trail. It is driven by the queue dispatcher, one event at a time per entity.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Record(ctx context.Context, in ports.AuditEventInput) error {
	entry := &domain.AuditEntry{
		Entity:    in.Entity,
		EntityID:  in.EntityID,
		Action:    in.Action,
		Actor:     in.Actor,
		Timestamp: in.Timestamp,
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		metrics.AuditErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("record audit event: %w", err)
	}

	metrics.AuditEventsProcessedTotal.WithLabelValues(in.Entity, string(in.Action)).Inc()
	s.log.Debug().
		Str("entity", in.Entity).
		Str("entity_id", in.EntityID).
		Str("action", string(in.Action)).
		Str("actor", in.Actor).
		Msg("audit event recorded")

	return nil
}
