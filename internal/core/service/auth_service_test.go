package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
	roles map[string]*domain.Role
	err   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users: make(map[string]*domain.User),
		roles: make(map[string]*domain.Role),
	}
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindRoleByName(_ context.Context, name string) (*domain.Role, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	clone := *role
	return &clone, nil
}

func (r *stubUserRepo) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *user
	r.users[user.Username] = &clone
	return &clone, nil
}

func (r *stubUserRepo) CreateRole(_ context.Context, role *domain.Role) (*domain.Role, error) {
	if _, exists := r.roles[role.Name]; exists {
		return nil, domain.ErrRoleExists
	}
	clone := *role
	r.roles[role.Name] = &clone
	return &clone, nil
}

func seedUser(t *testing.T, repo *stubUserRepo, hasher *PasswordHasher, username, password string, enabled bool, roleNames ...string) {
	t.Helper()
	hash, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	roles := make([]domain.Role, 0, len(roleNames))
	for _, n := range roleNames {
		roles = append(roles, domain.Role{Name: n})
	}
	if _, err := repo.CreateUser(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: hash,
		Enabled:      enabled,
		Roles:        roles,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	repo := newStubUserRepo()
	hasher := NewPasswordHasher(4)
	seedUser(t, repo, hasher, "admin", "admin", true, "ADMIN")
	svc := NewAuthService(repo, hasher, zerolog.Nop())

	p, err := svc.Authenticate(context.Background(), "admin", "admin")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if p.Username != "admin" {
		t.Fatalf("unexpected username: %s", p.Username)
	}
	if len(p.Authorities) != 1 || p.Authorities[0] != "ROLE_ADMIN" {
		t.Fatalf("unexpected authorities: %v", p.Authorities)
	}
}

func TestAuthService_Authenticate_AuthorityOrder(t *testing.T) {
	repo := newStubUserRepo()
	hasher := NewPasswordHasher(4)
	seedUser(t, repo, hasher, "carol", "pw", true, "EDITOR", "ADMIN", "VIEWER")
	svc := NewAuthService(repo, hasher, zerolog.Nop())

	p, err := svc.Authenticate(context.Background(), "carol", "pw")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	want := []string{"ROLE_EDITOR", "ROLE_ADMIN", "ROLE_VIEWER"}
	if len(p.Authorities) != len(want) {
		t.Fatalf("unexpected authorities: %v", p.Authorities)
	}
	for i := range want {
		if p.Authorities[i] != want[i] {
			t.Fatalf("stored role order not preserved: got %v, want %v", p.Authorities, want)
		}
	}
}

// Unknown username and wrong password must be indistinguishable to a caller.
func TestAuthService_Authenticate_NoEnumeration(t *testing.T) {
	repo := newStubUserRepo()
	hasher := NewPasswordHasher(4)
	seedUser(t, repo, hasher, "dave", "goodpass", true)
	svc := NewAuthService(repo, hasher, zerolog.Nop())

	_, errUnknown := svc.Authenticate(context.Background(), "ghost", "whatever")
	_, errWrongPw := svc.Authenticate(context.Background(), "dave", "badpass")

	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrongPw, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Fatalf("error surfaces differ: %q vs %q", errUnknown, errWrongPw)
	}
}

func TestAuthService_Authenticate_DisabledAccount(t *testing.T) {
	repo := newStubUserRepo()
	hasher := NewPasswordHasher(4)
	seedUser(t, repo, hasher, "eve", "correct", false, "ADMIN")
	svc := NewAuthService(repo, hasher, zerolog.Nop())

	if _, err := svc.Authenticate(context.Background(), "eve", "correct"); !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}

	// The disabled state must stay hidden behind the password check.
	if _, err := svc.Authenticate(context.Background(), "eve", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password on disabled account, got %v", err)
	}
}

func TestAuthService_Authenticate_EmptyInput(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, NewPasswordHasher(4), zerolog.Nop())

	if _, err := svc.Authenticate(context.Background(), "", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "user", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// Store outages must propagate as-is, not masquerade as bad credentials.
func TestAuthService_Authenticate_StoreUnavailable(t *testing.T) {
	repo := newStubUserRepo()
	repo.err = fmt.Errorf("find user: %w", domain.ErrStoreUnavailable)
	svc := NewAuthService(repo, NewPasswordHasher(4), zerolog.Nop())

	_, err := svc.Authenticate(context.Background(), "any", "pw")
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("store fault must not surface as invalid credentials")
	}
}
