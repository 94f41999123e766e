package domain

import (
	"errors"
	"time"
)

// RolePrefix marks an authority string as role-derived ("ADMIN" → "ROLE_ADMIN").
const RolePrefix = "ROLE_"

// Authentication and token errors. Not-found and wrong-password are folded
// into ErrInvalidCredentials before anything reaches the transport layer so
// the error surface never confirms that a username exists.
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountDisabled = errors.New("account disabled")
var ErrInvalidToken = errors.New("invalid token")
var ErrTokenExpired = errors.New("token expired")
var ErrTooManyAttempts = errors.New("too many login attempts")

// Store errors. ErrUserNotFound never crosses the authenticator boundary.
var ErrUserNotFound = errors.New("user not found")
var ErrRoleNotFound = errors.New("role not found")
var ErrUserExists = errors.New("user already exists")
var ErrRoleExists = errors.New("role already exists")
var ErrStoreUnavailable = errors.New("credential store unavailable")

// Role is a named authorization grant. Names are unique.
type Role struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Authority returns the role's grant string, e.g. "ROLE_ADMIN".
func (r Role) Authority() string {
	return RolePrefix + r.Name
}

// User is a stored credential record. The auth core only ever reads it;
// writes happen through provisioning (see infrastructure/seed).
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Enabled      bool      `json:"enabled"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
