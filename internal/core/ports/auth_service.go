package ports

import (
	"context"
	"time"

	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/domain"
)

// Authenticator verifies a username/password pair against the credential
// store and materializes the caller's identity and grants.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*domain.Principal, error)
}

// IssuedToken carries the compact serialized token together with its expiry,
// so the transport layer can report expires_at without re-parsing the token.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenService issues signed bearer tokens for authenticated principals and
// resolves principals back out of presented tokens. Both operations take the
// current time explicitly; implementations must not consult the wall clock.
type TokenService interface {
	Issue(principal *domain.Principal, now time.Time) (IssuedToken, error)
	Verify(tokenString string, now time.Time) (*domain.Principal, error)
}

// LoginLimiter gates login attempts per username. It lives outside the auth
// core so the Authenticator itself stays free of side effects.
type LoginLimiter interface {
	// Allow records an attempt and reports whether it may proceed.
	Allow(ctx context.Context, username string) (bool, error)
}
