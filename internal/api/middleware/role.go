package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leaddesk/leads-api/internal/core/domain"
)

// RequireRole rejects principals whose role is not in allowedRoles. It must
// run after Auth.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, _ := c.Get(PrincipalKey).(*domain.Principal)
			if p == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}
			if _, ok := allowed[p.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			}
			return next(c)
		}
	}
}
