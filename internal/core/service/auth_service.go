package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/domain"
	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/ports"
)

// AuthService implements password authentication against the credential store.
type AuthService struct {
	repo   ports.UserRepository
	hasher *PasswordHasher
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher *PasswordHasher, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, logger: logger}
}

// Authenticate looks up the user by exact username, verifies the password
// against the stored hash and checks the enabled flag. Unknown username and
// wrong password both surface as ErrInvalidCredentials; a disabled account
// with a correct password surfaces as ErrAccountDisabled. Store faults
// propagate unchanged so the transport layer can treat them as retryable
// infrastructure errors rather than authentication failures.
//
// On success the returned principal carries one authority per stored role,
// prefixed with ROLE_ and kept in stored order.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.Principal, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Enabled {
		s.logger.Info().Str("username", username).Msg("login rejected for disabled account")
		return nil, domain.ErrAccountDisabled
	}

	authorities := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		authorities = append(authorities, r.Authority())
	}

	return &domain.Principal{Username: user.Username, Authorities: authorities}, nil
}
