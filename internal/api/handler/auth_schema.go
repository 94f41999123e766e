package handler

import "time"

// --- Request / Response types ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginResponse mirrors the login contract: bearer token plus its expiry so
// clients never have to decode the token to learn when to re-authenticate.
type loginResponse struct {
	TokenType string    `json:"token_type"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// meResponse deliberately exposes the username only; authorities stay inside
// the token.
type meResponse struct {
	Username string `json:"username"`
}
