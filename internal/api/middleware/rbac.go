package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/byteverse/platform-api/internal/core/domain"
)

// RequireRole enforces role-based access control. A request with no
// resolved principal, or with a role outside the allowed set, is
// rejected.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(domain.Role)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}
