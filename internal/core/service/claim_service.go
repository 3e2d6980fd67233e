package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/consumershield/claims-core/internal/core/domain"
	"github.com/consumershield/claims-core/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ClaimService implements the claim workflow: creation, status
// transitions, assignment, and tenant-scoped reads. All side effects
// (audit, notification, cache invalidation) are enqueued after the
// primary write commits and are processed best-effort by the queue.
type ClaimService struct {
	repo        ports.ClaimRepository
	effects     ports.SideEffectQueue
	cache       ports.ViewCache
	allowReopen bool
	logger      zerolog.Logger
}

func NewClaimService(repo ports.ClaimRepository, effects ports.SideEffectQueue, cache ports.ViewCache, allowReopen bool, logger zerolog.Logger) *ClaimService {
	return &ClaimService{
		repo:        repo,
		effects:     effects,
		cache:       cache,
		allowReopen: allowReopen,
		logger:      logger,
	}
}

// CreateClaim files a new claim for the acting member (or on a member's
// behalf when filed by staff). The claim starts in submitted unless
// SaveAsDraft is set.
func (s *ClaimService) CreateClaim(ctx context.Context, input ports.CreateClaimInput) (*ports.ClaimResult, error) {
	actor := input.Actor
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	if !CanCreateClaim(actor) {
		return nil, fmt.Errorf("create claim: %w", domain.ErrForbidden)
	}

	status := domain.StatusSubmitted
	if input.SaveAsDraft {
		status = domain.StatusDraft
	}

	now := time.Now().UTC()
	claim := &domain.Claim{
		TenantID:       actor.TenantID,
		ClaimantUserID: actor.UserID,
		Status:         status,
		Title:          input.Title,
		CompanyName:    input.CompanyName,
		Description:    input.Description,
		Category:       input.Category,
		ClaimAmount:    input.ClaimAmount,
		Currency:       input.Currency,
		IncidentDate:   input.IncidentDate,
		Evidence:       toEvidence(input.Evidence),
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: status, ActorID: actor.UserID, Timestamp: now},
		},
	}

	if err := s.repo.Create(ctx, claim); err != nil {
		s.logger.Error().Err(err).Str("tenant_id", actor.TenantID).Msg("failed to create claim")
		return nil, fmt.Errorf("create claim: %w", err)
	}

	s.effects.Enqueue(ports.SideEffectJob{
		ClaimID:  claim.ID,
		TenantID: claim.TenantID,
		Audit: &domain.AuditLogEntry{
			ActorID:    actor.UserID,
			ActorRole:  actor.Role,
			TenantID:   actor.TenantID,
			Action:     domain.ActionClaimCreated,
			EntityType: "claim",
			EntityID:   claim.ID,
			Metadata:   map[string]string{"status": string(status), "category": claim.Category},
			CreatedAt:  now,
		},
		InvalidateScopes: []string{
			tenantQueueScope(claim.TenantID),
			claimantScope(claim.TenantID, claim.ClaimantUserID),
		},
	})

	s.logger.Info().
		Str("claim_id", claim.ID).
		Str("tenant_id", claim.TenantID).
		Str("status", string(status)).
		Msg("claim created")

	return &ports.ClaimResult{
		ClaimID:   claim.ID,
		Status:    string(status),
		CreatedAt: claim.CreatedAt,
	}, nil
}

// UpdateClaimStatus moves a claim to a new workflow status. The target
// status is validated before any repository access; the terminal lock
// and role guard run against the fetched claim; the write itself is a
// compare-and-swap on the claim version so a concurrent mutation
// surfaces as domain.ErrConflict instead of a silent lost update.
// Requesting the status the claim already has is a successful no-op.
func (s *ClaimService) UpdateClaimStatus(ctx context.Context, input ports.UpdateStatusInput) (*ports.StatusResult, error) {
	next := domain.ClaimStatus(input.NewStatus)
	if !next.IsValid() {
		return nil, fmt.Errorf("update status: %w: %q", domain.ErrInvalidStatus, input.NewStatus)
	}

	actor := input.Actor
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthorized
	}

	claim, err := s.repo.FindByID(ctx, input.ClaimID, actor.TenantID)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	if !CanMutateClaim(actor, claim) {
		return nil, fmt.Errorf("update status: %w", domain.ErrForbidden)
	}

	if claim.Status == next {
		return &ports.StatusResult{
			ClaimID:   claim.ID,
			Status:    string(claim.Status),
			UpdatedAt: claim.UpdatedAt,
			Unchanged: true,
		}, nil
	}

	if !claim.Status.CanTransitionTo(next) {
		// Terminal claims are write-locked unless re-opening is enabled.
		if !(s.allowReopen && claim.Status.IsTerminal() && next.IsValid()) {
			return nil, fmt.Errorf("update status: %w (from %s to %s)", domain.ErrInvalidTransition, claim.Status, next)
		}
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateStatus(ctx, claim.ID, claim.TenantID, claim.Version, next, actor.UserID, now); err != nil {
		s.logger.Error().Err(err).Str("claim_id", claim.ID).Msg("failed to update claim status")
		return nil, fmt.Errorf("update status: %w", err)
	}

	s.effects.Enqueue(ports.SideEffectJob{
		ClaimID:  claim.ID,
		TenantID: claim.TenantID,
		Audit: &domain.AuditLogEntry{
			ActorID:    actor.UserID,
			ActorRole:  actor.Role,
			TenantID:   claim.TenantID,
			Action:     domain.ActionClaimStatusUpdated,
			EntityType: "claim",
			EntityID:   claim.ID,
			Metadata:   map[string]string{"from": string(claim.Status), "to": string(next)},
			CreatedAt:  now,
		},
		Notify: &ports.StatusNotification{
			ClaimID:         claim.ID,
			NewStatus:       next,
			RecipientUserID: claim.ClaimantUserID,
		},
		InvalidateScopes: s.claimScopes(claim),
	})

	s.logger.Info().
		Str("claim_id", claim.ID).
		Str("from", string(claim.Status)).
		Str("to", string(next)).
		Msg("claim status updated")

	return &ports.StatusResult{ClaimID: claim.ID, Status: string(next), UpdatedAt: now}, nil
}

// AssignClaim sets or clears the staff member responsible for a claim.
// Assignment never changes the claim status. The guard runs before the
// fetch so unprivileged callers learn nothing about claim existence.
func (s *ClaimService) AssignClaim(ctx context.Context, input ports.AssignInput) (*ports.AssignResult, error) {
	actor := input.Actor
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	if !CanAssignClaim(actor) {
		return nil, fmt.Errorf("assign claim: %w", domain.ErrForbidden)
	}

	claim, err := s.repo.FindByID(ctx, input.ClaimID, actor.TenantID)
	if err != nil {
		return nil, fmt.Errorf("assign claim: %w", err)
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateAssignee(ctx, claim.ID, claim.TenantID, claim.Version, input.StaffID, now); err != nil {
		s.logger.Error().Err(err).Str("claim_id", claim.ID).Msg("failed to assign claim")
		return nil, fmt.Errorf("assign claim: %w", err)
	}

	scopes := []string{tenantQueueScope(claim.TenantID)}
	if claim.AssignedStaffID != "" {
		scopes = append(scopes, staffScope(claim.TenantID, claim.AssignedStaffID))
	}
	if input.StaffID != "" {
		scopes = append(scopes, staffScope(claim.TenantID, input.StaffID))
	}

	s.effects.Enqueue(ports.SideEffectJob{
		ClaimID:  claim.ID,
		TenantID: claim.TenantID,
		Audit: &domain.AuditLogEntry{
			ActorID:    actor.UserID,
			ActorRole:  actor.Role,
			TenantID:   claim.TenantID,
			Action:     domain.ActionClaimAssigned,
			EntityType: "claim",
			EntityID:   claim.ID,
			Metadata:   map[string]string{"from": claim.AssignedStaffID, "to": input.StaffID},
			CreatedAt:  now,
		},
		InvalidateScopes: scopes,
	})

	s.logger.Info().
		Str("claim_id", claim.ID).
		Str("staff_id", input.StaffID).
		Msg("claim assigned")

	return &ports.AssignResult{ClaimID: claim.ID, AssignedStaffID: input.StaffID, UpdatedAt: now}, nil
}

// GetClaim retrieves a single claim within the actor's tenant. A claim
// in another tenant is reported as not found, never as forbidden.
func (s *ClaimService) GetClaim(ctx context.Context, input ports.GetClaimInput) (*domain.Claim, error) {
	actor := input.Actor
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthorized
	}

	claim, err := s.repo.FindByID(ctx, input.ClaimID, actor.TenantID)
	if err != nil {
		return nil, fmt.Errorf("get claim: %w", err)
	}
	if !CanViewClaim(actor, claim) {
		return nil, fmt.Errorf("get claim: %w", domain.ErrForbidden)
	}
	return claim, nil
}

// ListClaims returns the claims visible to the actor: members see their
// own, agents see claims assigned to them, staff and admin roles see
// the tenant queue. Unfiltered first pages are served through the view
// cache when warm.
func (s *ClaimService) ListClaims(ctx context.Context, input ports.ListClaimsInput) (*ports.ListClaimsResult, error) {
	actor := input.Actor
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthorized
	}

	filter := ports.ListClaimsFilter{
		TenantID: actor.TenantID,
		Status:   input.Status,
		Category: input.Category,
		Search:   input.Search,
		DateFrom: input.DateFrom,
		DateTo:   input.DateTo,
		Page:     input.Page,
		Limit:    input.Limit,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	var scope string
	switch actor.Role {
	case domain.RoleMember:
		filter.ClaimantUserID = actor.UserID
		scope = claimantScope(actor.TenantID, actor.UserID)
	case domain.RoleAgent:
		filter.AssignedAgentID = actor.UserID
		scope = agentScope(actor.TenantID, actor.UserID)
	case domain.RoleStaff, domain.RoleBranchManager, domain.RoleAdmin, domain.RoleTenantAdmin, domain.RoleSuperAdmin:
		scope = tenantQueueScope(actor.TenantID)
	default:
		return nil, fmt.Errorf("list claims: %w", domain.ErrForbidden)
	}

	cacheable := s.cache != nil &&
		filter.Status == "" && filter.Category == "" && filter.Search == "" &&
		filter.DateFrom.IsZero() && filter.DateTo.IsZero() &&
		filter.Page == 1 && filter.Limit == defaultPageLimit

	if cacheable {
		if payload, ok := s.cache.Get(ctx, scope); ok {
			var cached ports.ListClaimsResult
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &cached, nil
			}
			s.logger.Warn().Str("scope", scope).Msg("discarding undecodable cached list view")
		}
	}

	claims, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}

	items := make([]ports.ClaimSummary, len(claims))
	for i, c := range claims {
		items[i] = ports.ClaimSummary{
			ID:              c.ID,
			Status:          string(c.Status),
			Title:           c.Title,
			CompanyName:     c.CompanyName,
			Category:        c.Category,
			ClaimAmount:     c.ClaimAmount,
			Currency:        c.Currency,
			AssignedStaffID: c.AssignedStaffID,
			CreatedAt:       c.CreatedAt,
			UpdatedAt:       c.UpdatedAt,
		}
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit != 0 {
		totalPages++
	}

	result := &ports.ListClaimsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}

	if cacheable {
		if payload, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, scope, payload); err != nil {
				s.logger.Warn().Err(err).Str("scope", scope).Msg("failed to cache list view")
			}
		}
	}

	return result, nil
}

// claimScopes returns every cache scope that could have rendered the claim.
func (s *ClaimService) claimScopes(claim *domain.Claim) []string {
	scopes := []string{
		tenantQueueScope(claim.TenantID),
		claimantScope(claim.TenantID, claim.ClaimantUserID),
	}
	if claim.AssignedAgentID != "" {
		scopes = append(scopes, agentScope(claim.TenantID, claim.AssignedAgentID))
	}
	if claim.AssignedStaffID != "" {
		scopes = append(scopes, staffScope(claim.TenantID, claim.AssignedStaffID))
	}
	return scopes
}

func toEvidence(in []ports.EvidenceInput) []domain.EvidenceFile {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.EvidenceFile, len(in))
	for i, e := range in {
		out[i] = domain.EvidenceFile{
			Name:        e.Name,
			StorageKey:  e.StorageKey,
			ContentType: e.ContentType,
			SizeBytes:   e.SizeBytes,
		}
	}
	return out
}
