package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/consumershield/claims-core/internal/core/domain"
)

// RBAC enforces role-based access control at the route level. The role
// string from the token is parsed through the closed role set first, so
// an unknown role can never match an allowed entry. Service-layer
// guards still run behind this for ownership checks.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, _ := c.Get("role").(string)
			role := domain.ParseRole(raw)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
