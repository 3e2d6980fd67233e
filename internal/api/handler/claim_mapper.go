package handler

import (
	"github.com/consumershield/claims-core/internal/core/domain"
	"github.com/consumershield/claims-core/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createClaimRequest, actor domain.Actor) ports.CreateClaimInput {
	evidence := make([]ports.EvidenceInput, len(req.Evidence))
	for i, e := range req.Evidence {
		evidence[i] = ports.EvidenceInput{
			Name:        e.Name,
			StorageKey:  e.StorageKey,
			ContentType: e.ContentType,
			SizeBytes:   e.SizeBytes,
		}
	}
	return ports.CreateClaimInput{
		Actor:        actor,
		Title:        req.Title,
		CompanyName:  req.CompanyName,
		Description:  req.Description,
		Category:     req.Category,
		ClaimAmount:  req.ClaimAmount,
		Currency:     req.Currency,
		IncidentDate: req.IncidentDate,
		Evidence:     evidence,
		SaveAsDraft:  req.SaveAsDraft,
	}
}

// --- Service result → HTTP response ---

func toGetResponse(c *domain.Claim) getClaimResponse {
	evidence := make([]evidenceResponse, len(c.Evidence))
	for i, e := range c.Evidence {
		evidence[i] = evidenceResponse{
			Name:        e.Name,
			StorageKey:  e.StorageKey,
			ContentType: e.ContentType,
			SizeBytes:   e.SizeBytes,
		}
	}
	history := make([]statusHistoryItemResponse, len(c.StatusHistory))
	for i, h := range c.StatusHistory {
		history[i] = statusHistoryItemResponse{
			Status:    string(h.Status),
			ActorID:   h.ActorID,
			Timestamp: h.Timestamp.UTC(),
		}
	}
	return getClaimResponse{
		ID:              c.ID,
		Status:          string(c.Status),
		Title:           c.Title,
		CompanyName:     c.CompanyName,
		Description:     c.Description,
		Category:        c.Category,
		ClaimAmount:     c.ClaimAmount,
		Currency:        c.Currency,
		IncidentDate:    c.IncidentDate,
		ClaimantUserID:  c.ClaimantUserID,
		AssignedAgentID: c.AssignedAgentID,
		AssignedStaffID: c.AssignedStaffID,
		Evidence:        evidence,
		StatusHistory:   history,
		CreatedAt:       c.CreatedAt.UTC(),
		UpdatedAt:       c.UpdatedAt.UTC(),
	}
}

func toListResponse(r *ports.ListClaimsResult) listClaimsResponse {
	items := make([]claimSummaryResponse, len(r.Items))
	for i, s := range r.Items {
		items[i] = claimSummaryResponse{
			ID:              s.ID,
			Status:          s.Status,
			Title:           s.Title,
			CompanyName:     s.CompanyName,
			Category:        s.Category,
			ClaimAmount:     s.ClaimAmount,
			Currency:        s.Currency,
			AssignedStaffID: s.AssignedStaffID,
			CreatedAt:       s.CreatedAt.UTC(),
			UpdatedAt:       s.UpdatedAt.UTC(),
		}
	}
	return listClaimsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
