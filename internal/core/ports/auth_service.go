package ports

import (
	"context"

	"github.com/taskdeck/employee-task-api/internal/core/domain"
)

// RegisterInput carries the fields of a registration or admin-creation request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     string
}

// AuthService issues sessions: it authenticates credentials, registers
// accounts and mints bearer tokens.
type AuthService interface {
	// Register creates an account and returns a freshly issued token with it.
	// Self-registration as admin is allowed only while no accounts exist.
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	// Login authenticates username+password and returns a token. All
	// failures are domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// CreateAdmin creates an account with the admin role forced, regardless
	// of the requested role. Callers must already be admin-gated.
	CreateAdmin(ctx context.Context, input RegisterInput) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// LoginLimiter throttles repeated failed logins per username.
type LoginLimiter interface {
	TooManyAttempts(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
