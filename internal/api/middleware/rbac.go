package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/domain"
)

// RequireAuthority enforces that the resolved principal holds at least one
// of the given authorities (e.g. "ROLE_ADMIN"). Must run after Auth.
func RequireAuthority(authorities ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, _ := c.Get("principal").(*domain.Principal)
			if principal == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			for _, a := range authorities {
				if principal.HasAuthority(a) {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
	}
}
