package dto

import (
	"encoding/json"
	"time"

	"tradebook/internal/infrastructure/storage/postgres"
)

// AuditEntryResponse is the API shape of one audit trail entry.
// The snapshot is served decompressed regardless of how it is stored.
type AuditEntryResponse struct {
	ID         string          `json:"id"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Action     string          `json:"action"`
	Snapshot   json.RawMessage `json:"snapshot,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// FromAuditEntry creates AuditEntryResponse.
func FromAuditEntry(e postgres.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:         e.ID.String(),
		EntityType: e.EntityType,
		EntityID:   e.EntityID.String(),
		Action:     string(e.Action),
		Snapshot:   e.Snapshot,
		CreatedAt:  e.CreatedAt,
	}
}
