package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/domain"
)

type stubLimiter struct {
	allow    bool
	err      error
	lastUser string
}

func (s *stubLimiter) Allow(_ context.Context, username string) (bool, error) {
	s.lastUser = username
	return s.allow, s.err
}

func loginContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLoginRateLimit_Allows(t *testing.T) {
	e := echo.New()
	limiter := &stubLimiter{allow: true}
	c, _ := loginContext(e, `{"username":"admin","password":"admin"}`)

	called := false
	handler := LoginRateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		called = true
		// The body must still be readable after the limiter peeked at it.
		body, err := io.ReadAll(c.Request().Body)
		if err != nil || !strings.Contains(string(body), `"admin"`) {
			t.Fatalf("body not restored: %q, %v", body, err)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if limiter.lastUser != "admin" {
		t.Fatalf("limiter keyed on %q, want admin", limiter.lastUser)
	}
}

func TestLoginRateLimit_Blocks(t *testing.T) {
	e := echo.New()
	limiter := &stubLimiter{allow: false}
	c, _ := loginContext(e, `{"username":"admin","password":"guess"}`)

	handler := LoginRateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestLoginRateLimit_FailsOpen(t *testing.T) {
	e := echo.New()
	limiter := &stubLimiter{allow: false, err: errors.New("redis down")}
	c, _ := loginContext(e, `{"username":"admin","password":"admin"}`)

	called := false
	handler := LoginRateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("limiter outage must not block logins")
	}
}

func TestLoginRateLimit_NoUsernameSkips(t *testing.T) {
	e := echo.New()
	limiter := &stubLimiter{allow: false}
	c, _ := loginContext(e, `not-json`)

	called := false
	handler := LoginRateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("malformed body should pass through to the handler's own validation")
	}
}
