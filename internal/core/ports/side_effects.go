package ports

import (
	"context"

	"github.com/consumershield/claims-core/internal/core/domain"
)

// AuditRepository persists append-only audit log entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditLogEntry) error
}

// Notifier delivers user-facing notifications. Implementations are
// fire-and-forget from the workflow's point of view: delivery failures
// are reported to the caller only so they can be logged and counted.
type Notifier interface {
	StatusChanged(ctx context.Context, claimID string, newStatus domain.ClaimStatus, recipientUserID string) error
}

// ViewCache caches rendered claim-list views per scope key and drops
// them when the underlying data changes.
type ViewCache interface {
	Get(ctx context.Context, scope string) ([]byte, bool)
	Set(ctx context.Context, scope string, payload []byte) error
	Invalidate(ctx context.Context, scopes ...string) error
}

// StatusNotification describes a pending claimant notification.
type StatusNotification struct {
	ClaimID         string
	NewStatus       domain.ClaimStatus
	RecipientUserID string
}

// SideEffectJob is the unit of post-commit work produced by a workflow
// action. Jobs are enqueued only after the primary write has committed;
// every part of a job is best-effort and must never fail the request
// that produced it.
type SideEffectJob struct {
	ClaimID          string
	TenantID         string
	Audit            *domain.AuditLogEntry
	Notify           *StatusNotification
	InvalidateScopes []string
}

// SideEffectQueue accepts post-commit jobs for asynchronous processing.
type SideEffectQueue interface {
	Enqueue(job SideEffectJob)
}
