package ports

import (
	"context"

	"github.com/taskdeck/employee-task-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Create must rely on the store's unique indexes as the race-safe guard and
// map duplicate-key failures to domain.ErrUsernameTaken / domain.ErrEmailTaken.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Count returns the total number of accounts; used by the
	// bootstrap-admin rule (first account may self-register as admin).
	Count(ctx context.Context) (int64, error)
	FindAll(ctx context.Context) ([]domain.User, error)
}
