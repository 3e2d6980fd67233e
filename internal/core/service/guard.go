package service

import (
	"github.com/consumershield/claims-core/internal/core/domain"
)

// Guards are pure authorization decisions over the closed role set.
// Every switch carries a default-deny arm so an unknown or future role
// can never pass a check it was not written for. Tenant membership is
// decided before these run: cross-tenant access never reaches a guard,
// it surfaces as not-found at the repository.

// CanMutateClaim reports whether actor may change the given claim's
// status. Admin roles and staff operate on any claim in their tenant;
// branch managers are treated as staff; agents only on claims assigned
// to them; members only on their own claim while it is still a draft
// (the draft to submitted path).
func CanMutateClaim(actor domain.Actor, claim *domain.Claim) bool {
	if !actor.Authenticated() {
		return false
	}
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleTenantAdmin, domain.RoleSuperAdmin:
		return true
	case domain.RoleStaff, domain.RoleBranchManager:
		return true
	case domain.RoleAgent:
		return claim.AssignedAgentID != "" && claim.AssignedAgentID == actor.UserID
	case domain.RoleMember:
		return claim.ClaimantUserID == actor.UserID && claim.Status == domain.StatusDraft
	default:
		return false
	}
}

// CanAssignClaim reports whether actor may (re)assign claims.
func CanAssignClaim(actor domain.Actor) bool {
	if !actor.Authenticated() {
		return false
	}
	switch actor.Role {
	case domain.RoleStaff, domain.RoleBranchManager, domain.RoleAdmin, domain.RoleTenantAdmin, domain.RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// CanViewClaim reports whether actor may read the given claim.
func CanViewClaim(actor domain.Actor, claim *domain.Claim) bool {
	if !actor.Authenticated() {
		return false
	}
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleTenantAdmin, domain.RoleSuperAdmin, domain.RoleStaff, domain.RoleBranchManager:
		return true
	case domain.RoleAgent:
		return claim.AssignedAgentID != "" && claim.AssignedAgentID == actor.UserID
	case domain.RoleMember:
		return claim.ClaimantUserID == actor.UserID
	default:
		return false
	}
}

// CanCreateClaim reports whether actor may file a new claim. Members
// file their own; staff and admin roles may file on a member's behalf.
func CanCreateClaim(actor domain.Actor) bool {
	if !actor.Authenticated() {
		return false
	}
	switch actor.Role {
	case domain.RoleMember, domain.RoleStaff, domain.RoleBranchManager, domain.RoleAdmin, domain.RoleTenantAdmin, domain.RoleSuperAdmin:
		return true
	default:
		return false
	}
}
