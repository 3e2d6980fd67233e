package ports

import (
	"context"
	"time"

	"github.com/consumershield/claims-core/internal/core/domain"
)

// ListClaimsFilter carries all query parameters for listing claims.
// TenantID is always enforced by the service layer; the ownership
// filters narrow the result further for member and agent actors.
type ListClaimsFilter struct {
	TenantID        string    // required: every list query is tenant-scoped
	ClaimantUserID  string    // non-empty = member scope (own claims only)
	AssignedAgentID string    // non-empty = agent scope (assigned claims only)
	AssignedStaffID string    // non-empty = staff personal queue
	Status          string    // optional: filter by claim status
	Category        string    // optional: filter by category
	Search          string    // optional: partial match on title or company_name
	DateFrom        time.Time // optional: created_at >= DateFrom
	DateTo          time.Time // optional: created_at <= DateTo
	Page            int       // 1-based
	Limit           int       // max rows per page (capped at 100 by service)
}

// ClaimRepository defines persistence operations for claims. Every
// method that takes a tenantID must filter by it; a tenant mismatch is
// indistinguishable from absence (domain.ErrClaimNotFound).
type ClaimRepository interface {
	Create(ctx context.Context, c *domain.Claim) error
	FindByID(ctx context.Context, id, tenantID string) (*domain.Claim, error)
	// List returns a page of claims matching filter and the total count.
	List(ctx context.Context, filter ListClaimsFilter) ([]*domain.Claim, int64, error)
	// UpdateStatus sets the claim status with a compare-and-swap on the
	// version field and appends a history entry. When no row matches
	// (id, tenantID, version) it returns domain.ErrConflict.
	UpdateStatus(ctx context.Context, id, tenantID string, version int64, status domain.ClaimStatus, actorID string, at time.Time) error
	// UpdateAssignee sets (or clears, when staffID is empty) the staff
	// assignee with the same compare-and-swap contract as UpdateStatus.
	UpdateAssignee(ctx context.Context, id, tenantID string, version int64, staffID string, at time.Time) error
}
