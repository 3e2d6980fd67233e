package domain

// Role is the closed set of actor roles. Free-text role strings from
// tokens or storage must go through ParseRole; anything unrecognised
// maps to RoleUnknown, which every guard denies.
type Role string

const (
	RoleMember        Role = "member"
	RoleAgent         Role = "agent"
	RoleStaff         Role = "staff"
	RoleAdmin         Role = "admin"
	RoleTenantAdmin   Role = "tenant_admin"
	RoleSuperAdmin    Role = "super_admin"
	RoleBranchManager Role = "branch_manager"
	RoleUnknown       Role = ""
)

// ParseRole converts a free-text role string into a Role, returning
// RoleUnknown for anything outside the closed set.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleMember, RoleAgent, RoleStaff, RoleAdmin, RoleTenantAdmin, RoleSuperAdmin, RoleBranchManager:
		return Role(s)
	default:
		return RoleUnknown
	}
}

// IsAdmin reports whether the role passes all tenant-scoped checks.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleTenantAdmin || r == RoleSuperAdmin
}

// Actor is the authenticated identity performing an action, derived per
// request from the session token. It is never persisted by this core.
type Actor struct {
	UserID   string
	Role     Role
	TenantID string
	BranchID string
}

// Authenticated reports whether the actor carries a usable identity.
func (a Actor) Authenticated() bool {
	return a.UserID != "" && a.TenantID != ""
}
