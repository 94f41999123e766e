package domain

// Principal is the resolved identity of an authenticated caller: the
// username plus its role-derived authority strings, in stored role order.
// It is built once — at login or token verification — and never mutated,
// so it is safe to share across goroutines for the request's lifetime.
// It is never persisted.
type Principal struct {
	Username    string   `json:"username"`
	Authorities []string `json:"authorities"`
}

// HasAuthority reports whether the principal holds the given grant.
func (p *Principal) HasAuthority(authority string) bool {
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}
