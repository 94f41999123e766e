package middleware

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rollenspielwerkzeuge/placemat-auth/internal/api/metrics"
	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/domain"
	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/ports"
)

// LoginRateLimit gates login attempts per username before the credential
// check runs, so a brute-force run never reaches bcrypt. The limiter fails
// open: auth availability must not depend on the limiter backend.
func LoginRateLimit(limiter ports.LoginLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username := peekUsername(c)
			if username == "" {
				return next(c)
			}

			ok, err := limiter.Allow(c.Request().Context(), username)
			if err != nil {
				log.Warn().Err(err).Msg("login limiter unavailable, failing open")
				return next(c)
			}
			if !ok {
				metrics.LoginsTotal.WithLabelValues("rate_limited").Inc()
				return domain.ErrTooManyAttempts
			}
			return next(c)
		}
	}
}

// peekUsername reads the username from the JSON body without consuming it;
// the body is restored so the handler can bind it again.
func peekUsername(c echo.Context) string {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return ""
	}
	c.Request().Body = io.NopCloser(strings.NewReader(string(body)))

	var req struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return ""
	}
	return req.Username
}
