package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware.
// Its presence proves the middleware ran; a handler reached without it is a
// routing mistake and answers 401 rather than 500.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	p, ok := c.Get("principal").(*domain.Principal)
	if !ok || p == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return p, nil
}
