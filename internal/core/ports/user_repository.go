package ports

import (
	"context"

	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/domain"
)

// UserRepository is the credential store boundary. The auth core only calls
// the two lookups; Create* exist for provisioning (seeding) and are never
// invoked on the login or token paths.
//
// Lookups return domain.ErrUserNotFound / domain.ErrRoleNotFound for a
// definitive miss and wrap domain.ErrStoreUnavailable for transient
// infrastructure faults, so callers can tell a negative result from an
// outage.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindRoleByName(ctx context.Context, name string) (*domain.Role, error)

	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	CreateRole(ctx context.Context, role *domain.Role) (*domain.Role, error)
}
