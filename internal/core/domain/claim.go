package domain

import (
	"errors"
	"time"
)

// ClaimStatus represents the lifecycle state of a claim.
type ClaimStatus string

const (
	StatusDraft        ClaimStatus = "draft"
	StatusSubmitted    ClaimStatus = "submitted"
	StatusVerification ClaimStatus = "verification"
	StatusEvaluation   ClaimStatus = "evaluation"
	StatusNegotiation  ClaimStatus = "negotiation"
	StatusCourt        ClaimStatus = "court"
	StatusResolved     ClaimStatus = "resolved"
	StatusRejected     ClaimStatus = "rejected"
	StatusWithdrawn    ClaimStatus = "withdrawn"
)

// openStatuses are the workflow states a claim can still move out of.
var openStatuses = map[ClaimStatus]struct{}{
	StatusDraft:        {},
	StatusSubmitted:    {},
	StatusVerification: {},
	StatusEvaluation:   {},
	StatusNegotiation:  {},
	StatusCourt:        {},
}

// terminalStatuses are write-locked end states.
var terminalStatuses = map[ClaimStatus]struct{}{
	StatusResolved:  {},
	StatusRejected:  {},
	StatusWithdrawn: {},
}

var ErrClaimNotFound = errors.New("claim not found")
var ErrInvalidStatus = errors.New("invalid status")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrConflict = errors.New("concurrent modification conflict")
var ErrForbidden = errors.New("access forbidden")
var ErrUnauthorized = errors.New("unauthorized")
var ErrRateLimited = errors.New("too many requests")

// IsValid reports whether s is a member of the closed status set.
func (s ClaimStatus) IsValid() bool {
	if _, ok := openStatuses[s]; ok {
		return true
	}
	_, ok := terminalStatuses[s]
	return ok
}

// IsOpen reports whether a claim in this status can still be transitioned.
func (s ClaimStatus) IsOpen() bool {
	_, ok := openStatuses[s]
	return ok
}

// IsTerminal reports whether s is an end state.
func (s ClaimStatus) IsTerminal() bool {
	_, ok := terminalStatuses[s]
	return ok
}

// CanTransitionTo reports whether a claim in status s may move to next.
// Any open status may reach any other valid status; terminal statuses
// are locked. Self-transitions are allowed and treated as no-ops by the
// service layer.
func (s ClaimStatus) CanTransitionTo(next ClaimStatus) bool {
	if !next.IsValid() {
		return false
	}
	return s.IsOpen()
}

// EvidenceFile describes a single uploaded piece of evidence attached to
// a claim. The file body itself lives in object storage; the claim only
// keeps the descriptor.
type EvidenceFile struct {
	Name        string `json:"name" bson:"name"`
	StorageKey  string `json:"storage_key" bson:"storage_key"`
	ContentType string `json:"content_type" bson:"content_type"`
	SizeBytes   int64  `json:"size_bytes" bson:"size_bytes"`
}

// StatusHistoryEntry records a single status transition on a claim.
type StatusHistoryEntry struct {
	Status    ClaimStatus `json:"status" bson:"status"`
	ActorID   string      `json:"actor_id" bson:"actor_id"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}

// Claim is the core aggregate root: one filed consumer-protection case.
//
// TenantID is immutable after creation and every repository read or
// write is scoped by it; a claim is never visible outside its tenant.
// Version supports compare-and-swap writes so concurrent status or
// assignment updates surface as ErrConflict instead of lost updates.
type Claim struct {
	ID              string               `json:"id" bson:"-"`
	TenantID        string               `json:"tenant_id" bson:"tenant_id"`
	ClaimantUserID  string               `json:"claimant_user_id" bson:"claimant_user_id"`
	AssignedAgentID string               `json:"assigned_agent_id,omitempty" bson:"assigned_agent_id,omitempty"`
	AssignedStaffID string               `json:"assigned_staff_id,omitempty" bson:"assigned_staff_id,omitempty"`
	Status          ClaimStatus          `json:"status" bson:"status"`
	Title           string               `json:"title" bson:"title"`
	CompanyName     string               `json:"company_name" bson:"company_name"`
	Description     string               `json:"description" bson:"description"`
	Category        string               `json:"category" bson:"category"`
	ClaimAmount     string               `json:"claim_amount,omitempty" bson:"claim_amount,omitempty"`
	Currency        string               `json:"currency" bson:"currency"`
	IncidentDate    *time.Time           `json:"incident_date,omitempty" bson:"incident_date,omitempty"`
	Evidence        []EvidenceFile       `json:"evidence,omitempty" bson:"evidence,omitempty"`
	Version         int64                `json:"version" bson:"version"`
	CreatedAt       time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at" bson:"updated_at"`
	StatusHistory   []StatusHistoryEntry `json:"status_history" bson:"status_history"`
}
