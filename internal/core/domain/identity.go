package domain

import "errors"

// Bearer verification failures. The identity resolver collapses all of them
// to "no identity from this scheme"; they are never shown to API clients.
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrMalformedToken = errors.New("malformed token")
	ErrUnknownSubject = errors.New("unknown token subject")
	ErrInvalidAPIKey  = errors.New("invalid api key")
)

// Authorization gate failures, the only auth errors surfaced to clients.
var (
	ErrUnauthenticated = errors.New("authentication required: provide a bearer token or an API key")
	ErrForbidden       = errors.New("admin privileges required")
)

// SyntheticSubject is the reserved subject attributed to requests
// authenticated with an API key instead of a user session.
const SyntheticSubject = "api_key_user"

// Identity is the resolved principal of a request. User is nil for the
// synthetic API-key identity, so downstream code cannot mistake it for a
// persisted account.
type Identity struct {
	Subject string
	Role    string
	Active  bool
	User    *User
}

// NewPersistedIdentity wraps a verified account.
func NewPersistedIdentity(u *User) *Identity {
	return &Identity{
		Subject: u.Username,
		Role:    u.Role,
		Active:  u.IsActive,
		User:    u,
	}
}

// NewSyntheticAdmin returns the admin-level identity granted by a valid API
// key. It is not backed by any account record.
func NewSyntheticAdmin() *Identity {
	return &Identity{
		Subject: SyntheticSubject,
		Role:    RoleAdmin,
		Active:  true,
	}
}

// Synthetic reports whether the identity has no persisted account behind it.
func (id *Identity) Synthetic() bool {
	return id.User == nil
}

// IsAdmin requires the role to be exactly RoleAdmin; an unrecognised role
// never grants anything.
func (id *Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}

// RequireAuthenticated is the "must be authenticated" gate. A nil identity
// means no credential scheme produced a principal.
func RequireAuthenticated(id *Identity) error {
	if id == nil {
		return ErrUnauthenticated
	}
	return nil
}

// RequireAdmin is the "must be admin" gate, composed after
// RequireAuthenticated.
func RequireAdmin(id *Identity) error {
	if err := RequireAuthenticated(id); err != nil {
		return err
	}
	if !id.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
