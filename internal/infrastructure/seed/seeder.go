// Package seed provisions the development default account. It runs only in
// the development environment and is the sole writer the auth service itself
// ever invokes on the credential store; the auth core never writes.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/domain"
	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/ports"
	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/service"
)

const (
	devUsername = "admin"
	devPassword = "admin"
	devRole     = "ADMIN"
)

// Seeder ensures the dev role and account exist.
type Seeder struct {
	repo   ports.UserRepository
	hasher *service.PasswordHasher
	logger zerolog.Logger
}

func NewSeeder(repo ports.UserRepository, hasher *service.PasswordHasher, logger zerolog.Logger) *Seeder {
	return &Seeder{repo: repo, hasher: hasher, logger: logger}
}

// Run makes sure role "ADMIN" and user "admin" (enabled, password "admin",
// role {ADMIN}) exist. Idempotent: existing records are left untouched, so
// a changed dev password survives restarts.
func (s *Seeder) Run(ctx context.Context) error {
	role, err := s.repo.FindRoleByName(ctx, devRole)
	if errors.Is(err, domain.ErrRoleNotFound) {
		role, err = s.repo.CreateRole(ctx, &domain.Role{Name: devRole})
		if errors.Is(err, domain.ErrRoleExists) {
			role, err = s.repo.FindRoleByName(ctx, devRole)
		}
	}
	if err != nil {
		return fmt.Errorf("seed role: %w", err)
	}

	_, err = s.repo.FindByUsername(ctx, devUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("seed user lookup: %w", err)
	}

	hash, err := s.hasher.Hash(devPassword)
	if err != nil {
		return fmt.Errorf("seed user hash: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.repo.CreateUser(ctx, &domain.User{
		Username:     devUsername,
		PasswordHash: hash,
		Enabled:      true,
		Roles:        []domain.Role{*role},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, domain.ErrUserExists) {
		// Lost a race against another instance; the account exists, done.
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	s.logger.Info().Str("username", devUsername).Msg("seeded development account")
	return nil
}
