package domain

import "errors"

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// ValidRole reports whether role is one of the two recognised roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleClient
}

var (
	// ErrInvalidCredentials covers wrong username, wrong password and
	// inactive account alike; callers must not be able to tell them apart.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAdminSelfRegister  = errors.New("cannot self-register as admin")
	ErrInactiveUser       = errors.New("inactive user")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// User models an account that can authenticate against the API.
// The password hash is never serialised.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"full_name,omitempty"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	IsActive     bool   `json:"is_active"`
}
