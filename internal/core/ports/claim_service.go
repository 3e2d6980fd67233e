package ports

import (
	"context"
	"time"

	"github.com/consumershield/claims-core/internal/core/domain"
)

// EvidenceInput describes one uploaded evidence file attached at creation.
type EvidenceInput struct {
	Name        string
	StorageKey  string
	ContentType string
	SizeBytes   int64
}

// CreateClaimInput carries all data needed to file a new claim.
type CreateClaimInput struct {
	Actor        domain.Actor
	Title        string
	CompanyName  string
	Description  string
	Category     string
	ClaimAmount  string
	Currency     string
	IncidentDate *time.Time
	Evidence     []EvidenceInput
	// SaveAsDraft files the claim in draft instead of submitted.
	SaveAsDraft bool
}

// ClaimResult is returned by the service after creating a claim.
type ClaimResult struct {
	ClaimID   string
	Status    string
	CreatedAt time.Time
}

// UpdateStatusInput carries the parameters for a status transition.
type UpdateStatusInput struct {
	Actor     domain.Actor
	ClaimID   string
	NewStatus string
}

// StatusResult is returned after a status transition.
type StatusResult struct {
	ClaimID   string
	Status    string
	UpdatedAt time.Time
	// Unchanged is true when the requested status matched the current
	// one and no write was performed.
	Unchanged bool
}

// AssignInput carries the parameters for (re)assigning a claim. An
// empty StaffID unassigns.
type AssignInput struct {
	Actor   domain.Actor
	ClaimID string
	StaffID string
}

// AssignResult is returned after an assignment change.
type AssignResult struct {
	ClaimID         string
	AssignedStaffID string
	UpdatedAt       time.Time
}

// GetClaimInput carries the parameters to retrieve a single claim.
type GetClaimInput struct {
	Actor   domain.Actor
	ClaimID string
}

// ListClaimsInput carries all parameters for the list endpoint. The
// visible scope is derived from the actor's role by the service.
type ListClaimsInput struct {
	Actor    domain.Actor
	Status   string
	Category string
	Search   string
	DateFrom time.Time
	DateTo   time.Time
	Page     int
	Limit    int
}

// ClaimSummary is the lightweight view used in list responses.
type ClaimSummary struct {
	ID              string
	Status          string
	Title           string
	CompanyName     string
	Category        string
	ClaimAmount     string
	Currency        string
	AssignedStaffID string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ListClaimsResult is returned by ListClaims.
type ListClaimsResult struct {
	Items      []ClaimSummary
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ClaimService defines the workflow operations of the claims core.
type ClaimService interface {
	CreateClaim(ctx context.Context, input CreateClaimInput) (*ClaimResult, error)
	UpdateClaimStatus(ctx context.Context, input UpdateStatusInput) (*StatusResult, error)
	AssignClaim(ctx context.Context, input AssignInput) (*AssignResult, error)
	GetClaim(ctx context.Context, input GetClaimInput) (*domain.Claim, error)
	ListClaims(ctx context.Context, input ListClaimsInput) (*ListClaimsResult, error)
}
