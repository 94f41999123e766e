package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rollenspielwerkzeuge/placemat-auth/internal/api/i18n"
	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors: a stable
// machine-readable code plus a message localized to the request's
// Accept-Language.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain auth errors 1:1 to status codes and stable error codes.
//   - Resolves the human-readable message from the catalog per request locale.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger, catalog *i18n.Catalog) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code, detail := resolveError(err, log, c)

		locale := catalog.MatchLocale(c.Request().Header.Get("Accept-Language"))
		msg := catalog.Resolve(locale, code)
		if detail != "" {
			msg = detail
		}

		_ = c.JSON(status, errorResponse{Code: code, Message: msg})
	}
}

// resolveError maps err to (status, code, detail). detail is non-empty only
// for request validation problems, where the concrete field message is more
// useful than the generic catalog entry and leaks nothing sensitive.
func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	// Deterministic auth outcomes. Per policy, never retried and never
	// more detailed than the code itself.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, i18n.CodeInvalidCredentials, ""
	case errors.Is(err, domain.ErrAccountDisabled):
		return http.StatusUnauthorized, i18n.CodeAccountDisabled, ""
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, i18n.CodeInvalidToken, ""
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, i18n.CodeTokenExpired, ""
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, i18n.CodeTooManyAttempts, ""
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch {
		case he.Code >= http.StatusInternalServerError:
			return he.Code, i18n.CodeServerError, ""
		case he.Code == http.StatusUnauthorized:
			// Missing or malformed Authorization header; same shape as a
			// failed verification.
			return he.Code, i18n.CodeInvalidToken, ""
		default:
			return he.Code, i18n.CodeInvalidRequest, fmt.Sprintf("%v", he.Message)
		}
	}

	// Everything else — including credential store outages — is an
	// infrastructure fault: log the real cause, answer generically.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, i18n.CodeServerError, ""
}
