package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/consumershield/claims-core/internal/core/domain"
)

// ctxActor builds the acting identity from the claims injected by the
// Auth middleware and fast-fails before any service call:
//   - user_id and tenant_id must be present (presence proves the
//     middleware ran and the token carried a usable session).
//   - the role string is parsed through the closed role set; an
//     unrecognised role yields RoleUnknown, which every guard denies.
func ctxActor(c echo.Context) (domain.Actor, error) {
	userID, _ := c.Get("user_id").(string)
	tenantID, _ := c.Get("tenant_id").(string)
	if userID == "" || tenantID == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	roleStr, _ := c.Get("role").(string)
	branchID, _ := c.Get("branch_id").(string)

	return domain.Actor{
		UserID:   userID,
		Role:     domain.ParseRole(roleStr),
		TenantID: tenantID,
		BranchID: branchID,
	}, nil
}
