package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rollenspielwerkzeuge/placemat-auth/internal/api/metrics"
	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/domain"
	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/ports"
)

// Auth extracts the bearer token, verifies it, and injects the resolved
// principal into the echo context under "principal". Verification is purely
// local: the token's claims are trusted for the request's lifetime and the
// credential store is never consulted.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			principal, err := tokens.Verify(parts[1], time.Now().UTC())
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				return err
			}
			metrics.TokenVerificationsTotal.WithLabelValues("success").Inc()

			c.Set("principal", principal)
			return next(c)
		}
	}
}

func verifyResult(err error) string {
	if errors.Is(err, domain.ErrTokenExpired) {
		return "expired"
	}
	return "invalid"
}
