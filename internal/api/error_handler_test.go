package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rollenspielwerkzeuge/placemat-auth/internal/api/i18n"
	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/domain"
)

func handleError(t *testing.T, err error, acceptLanguage string) (int, map[string]string) {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop(), i18n.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(err, c)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "auth.invalid_credentials"},
		{domain.ErrAccountDisabled, http.StatusUnauthorized, "auth.account_disabled"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "auth.invalid_token"},
		{domain.ErrTokenExpired, http.StatusUnauthorized, "auth.token_expired"},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests, "auth.too_many_attempts"},
	}

	for _, tc := range cases {
		status, body := handleError(t, tc.err, "")
		if status != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, status)
		}
		if body["code"] != tc.code {
			t.Fatalf("%v: expected code %s, got %s", tc.err, tc.code, body["code"])
		}
		if body["message"] == "" || body["message"] == tc.code {
			t.Fatalf("%v: expected resolved message, got %q", tc.err, body["message"])
		}
	}
}

func TestErrorHandler_LocalizedMessage(t *testing.T) {
	_, body := handleError(t, domain.ErrInvalidCredentials, "de-DE,de;q=0.9")
	if body["message"] != "Benutzername oder Passwort ist ungültig." {
		t.Fatalf("expected german message, got %q", body["message"])
	}

	_, body = handleError(t, domain.ErrInvalidCredentials, "fr-FR")
	if body["message"] != "Invalid username or password." {
		t.Fatalf("expected english fallback, got %q", body["message"])
	}
}

// Infrastructure faults must not leak internals and must not look like auth failures.
func TestErrorHandler_StoreUnavailable(t *testing.T) {
	status, body := handleError(t, fmt.Errorf("find user: %w", domain.ErrStoreUnavailable), "")
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if body["code"] != "server.error" {
		t.Fatalf("expected server.error, got %s", body["code"])
	}
	if body["message"] == domain.ErrStoreUnavailable.Error() {
		t.Fatalf("internal error detail leaked to client")
	}
}

func TestErrorHandler_UnexpectedError(t *testing.T) {
	status, body := handleError(t, errors.New("mongo: socket closed"), "")
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if body["code"] != "server.error" {
		t.Fatalf("expected server.error, got %s", body["code"])
	}
	if body["message"] != "An internal error occurred." {
		t.Fatalf("unexpected message: %q", body["message"])
	}
}

func TestErrorHandler_MissingAuthHeader(t *testing.T) {
	status, body := handleError(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"), "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if body["code"] != "auth.invalid_token" {
		t.Fatalf("expected auth.invalid_token, got %s", body["code"])
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	status, body := handleError(t, echo.NewHTTPError(http.StatusBadRequest, "username is required"), "")
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body["code"] != "request.invalid" {
		t.Fatalf("expected request.invalid, got %s", body["code"])
	}
	if body["message"] != "username is required" {
		t.Fatalf("expected field detail, got %q", body["message"])
	}
}
