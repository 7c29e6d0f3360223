package domain

import (
	"context"

	"tradebook/internal/core/id"
)

// AuditAction represents the type of audited operation.
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionSettle AuditAction = "settle"
)

// AuditLogger records who did what to which entity, with a snapshot of the
// entity at that point. Implementations must be safe to call inside the
// operation's transaction so the trail commits atomically with the change.
type AuditLogger interface {
	Log(ctx context.Context, entityType string, entityID id.ID, action AuditAction, snapshot any) error
}

// NopAuditLogger discards audit entries. Used in tests.
type NopAuditLogger struct{}

// Log implements AuditLogger.
func (NopAuditLogger) Log(ctx context.Context, entityType string, entityID id.ID, action AuditAction, snapshot any) error {
	return nil
}
