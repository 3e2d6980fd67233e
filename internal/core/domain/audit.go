package domain

import "time"

// Audit action tags. One entry is written for every mutating workflow
// action; entries are append-only and never updated or deleted.
const (
	ActionClaimCreated       = "claim.created"
	ActionClaimStatusUpdated = "claim.status_updated"
	ActionClaimAssigned      = "claim.assigned"
)

// AuditLogEntry is an immutable audit trail record.
type AuditLogEntry struct {
	ActorID    string            `json:"actor_id" bson:"actor_id"`
	ActorRole  Role              `json:"actor_role" bson:"actor_role"`
	TenantID   string            `json:"tenant_id" bson:"tenant_id"`
	Action     string            `json:"action" bson:"action"`
	EntityType string            `json:"entity_type" bson:"entity_type"`
	EntityID   string            `json:"entity_id" bson:"entity_id"`
	Metadata   map[string]string `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at" bson:"created_at"`
}
