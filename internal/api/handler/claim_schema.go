package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type evidenceRequest struct {
	Name        string `json:"name"         validate:"required"`
	StorageKey  string `json:"storage_key"  validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
	SizeBytes   int64  `json:"size_bytes"   validate:"required,gt=0"`
}

type createClaimRequest struct {
	Title        string            `json:"title"         validate:"required,min=5"`
	CompanyName  string            `json:"company_name"  validate:"required,min=2"`
	Description  string            `json:"description"   validate:"required,min=20"`
	Category     string            `json:"category"      validate:"required"`
	ClaimAmount  string            `json:"claim_amount"  validate:"omitempty,numeric"`
	Currency     string            `json:"currency"      validate:"required,len=3"`
	IncidentDate *time.Time        `json:"incident_date"`
	Evidence     []evidenceRequest `json:"evidence"      validate:"omitempty,dive"`
	SaveAsDraft  bool              `json:"save_as_draft"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type assignClaimRequest struct {
	// StaffID empty or absent unassigns the claim.
	StaffID string `json:"staff_id"`
}

// --- Response types ---
// These are intentionally separate from ports/domain types so the JSON
// contract is not coupled to internal service changes.

type createClaimResponse struct {
	ClaimID   string    `json:"claim_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type updateStatusResponse struct {
	Success   bool      `json:"success"`
	ClaimID   string    `json:"claim_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type assignClaimResponse struct {
	Success         bool      `json:"success"`
	ClaimID         string    `json:"claim_id"`
	AssignedStaffID string    `json:"assigned_staff_id,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type evidenceResponse struct {
	Name        string `json:"name"`
	StorageKey  string `json:"storage_key"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

type statusHistoryItemResponse struct {
	Status    string    `json:"status"`
	ActorID   string    `json:"actor_id"`
	Timestamp time.Time `json:"timestamp"`
}

type getClaimResponse struct {
	ID              string                      `json:"id"`
	Status          string                      `json:"status"`
	Title           string                      `json:"title"`
	CompanyName     string                      `json:"company_name"`
	Description     string                      `json:"description"`
	Category        string                      `json:"category"`
	ClaimAmount     string                      `json:"claim_amount,omitempty"`
	Currency        string                      `json:"currency"`
	IncidentDate    *time.Time                  `json:"incident_date,omitempty"`
	ClaimantUserID  string                      `json:"claimant_user_id"`
	AssignedAgentID string                      `json:"assigned_agent_id,omitempty"`
	AssignedStaffID string                      `json:"assigned_staff_id,omitempty"`
	Evidence        []evidenceResponse          `json:"evidence,omitempty"`
	StatusHistory   []statusHistoryItemResponse `json:"status_history"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

// claimSummaryResponse is the lightweight item used in list responses.
// It intentionally omits description, evidence, and status_history to
// keep queue payloads small.
type claimSummaryResponse struct {
	ID              string    `json:"id"`
	Status          string    `json:"status"`
	Title           string    `json:"title"`
	CompanyName     string    `json:"company_name"`
	Category        string    `json:"category"`
	ClaimAmount     string    `json:"claim_amount,omitempty"`
	Currency        string    `json:"currency"`
	AssignedStaffID string    `json:"assigned_staff_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listClaimsResponse struct {
	Data       []claimSummaryResponse `json:"data"`
	Pagination paginationResponse     `json:"pagination"`
}
