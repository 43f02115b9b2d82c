package ports

import (
	"context"

	"github.com/taskdeck/employee-task-api/internal/core/domain"
)

// IdentityResolver turns the optional raw credentials of one request into at
// most one identity. Verification failures are recovered internally: a bad
// bearer token falls through to the API key, and a request where no scheme
// succeeds resolves to nil rather than an error. Rejecting unauthenticated
// requests is the authorization gate's job, not the resolver's.
type IdentityResolver interface {
	Resolve(ctx context.Context, bearerToken, apiKey string) *domain.Identity
}
