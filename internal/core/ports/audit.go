package ports

import (
	"context"
	"time"

	"github.com/taskdeck/employee-task-api/internal/core/domain"
)

// AuditEventInput is the DTO handed from services to the audit pipeline.
type AuditEventInput struct {
	Entity    string
	EntityID  string
	Action    domain.AuditAction
	Actor     string
	Timestamp time.Time
}

// AuditSink accepts audit events for asynchronous processing. Services
// enqueue fire-and-forget; ordering per entity id is the dispatcher's job.
type AuditSink interface {
	Enqueue(event AuditEventInput)
}

// AuditService persists audit events.
type AuditService interface {
	Record(ctx context.Context, event AuditEventInput) error
}

// AuditRepository handles audit trail persistence.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}
