package domain

import "time"

// AuditAction classifies a recorded mutation.
type AuditAction string

const (
	AuditCreated  AuditAction = "created"
	AuditUpdated  AuditAction = "updated"
	AuditDeleted  AuditAction = "deleted"
	AuditAssigned AuditAction = "assigned"
)

// AuditEntry records a single mutation of a domain entity, attributed to the
// identity that performed it.
type AuditEntry struct {
	Entity    string
	EntityID  string
	Action    AuditAction
	Actor     string
	Timestamp time.Time
}
