package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskdeck/employee-task-api/internal/core/domain"
	"github.com/taskdeck/employee-task-api/internal/core/ports"
)

const (
	// identityKey is the echo context key the resolved identity is stored under.
	identityKey = "identity"
	// APIKeyHeader is the request header carrying the static API key.
	APIKeyHeader = "X-API-Key"
)

// Identity extracts the optional bearer token and API key from the request
// headers, runs the resolver, and stores the resulting identity (if any) in
// the context. It never rejects a request: an unauthenticated request simply
// carries no identity, and the gate middleware decides whether that matters.
func Identity(resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			bearer := bearerToken(c.Request().Header.Get("Authorization"))
			apiKey := c.Request().Header.Get(APIKeyHeader)

			if id := resolver.Resolve(c.Request().Context(), bearer, apiKey); id != nil {
				c.Set(identityKey, id)
			}

			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by the Identity middleware, or nil
// when the request is unauthenticated.
func IdentityFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(identityKey).(*domain.Identity)
	return id
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Any other shape is treated as no bearer credential at all.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
