package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/domain"
	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/ports"
)

const (
	defaultIssuer = "placemat-core"
	defaultTTL    = time.Hour
)

// TokenConfig is the immutable signing configuration, built once at startup
// and shared read-only between issue and verify. The secret never appears in
// logs or error messages.
type TokenConfig struct {
	Issuer string
	TTL    time.Duration
	Secret []byte
}

// tokenClaims is the claim set carried by every issued token: the standard
// registered claims plus the ordered authority strings.
type tokenClaims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// TokenService issues and verifies HS256-signed bearer tokens.
type TokenService struct {
	cfg TokenConfig
}

func NewTokenService(cfg TokenConfig) *TokenService {
	if cfg.Issuer == "" {
		cfg.Issuer = defaultIssuer
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	return &TokenService{cfg: cfg}
}

// Issue signs a token for the principal with iat=now and exp=now+ttl,
// preserving the principal's authority order in the roles claim.
func (s *TokenService) Issue(principal *domain.Principal, now time.Time) (ports.IssuedToken, error) {
	expiresAt := now.Add(s.cfg.TTL)

	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   principal.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Roles: principal.Authorities,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return ports.IssuedToken{}, err
	}

	return ports.IssuedToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// Verify parses and validates tokenString at the supplied instant and
// rebuilds the principal from the subject and roles claims. The credential
// store is not consulted: the token is the sole source of truth until it
// expires. Expiry is reported as ErrTokenExpired (a routine condition for
// legitimate clients); every other failure — malformed structure, bad
// signature, wrong algorithm, wrong issuer — collapses into ErrInvalidToken
// without revealing which check tripped.
func (s *TokenService) Verify(tokenString string, now time.Time) (*domain.Principal, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return s.cfg.Secret, nil
		},
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return nil, domain.ErrInvalidToken
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		default:
			return nil, domain.ErrInvalidToken
		}
	}
	if !token.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Principal{Username: claims.Subject, Authorities: claims.Roles}, nil
}
