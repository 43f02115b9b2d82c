package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/taskdeck/employee-task-api/internal/api/middleware"
	"github.com/taskdeck/employee-task-api/internal/core/domain"
)

// identity returns the resolved identity for the request. Handlers mounted
// behind RequireAuth can rely on it being non-nil.
func identity(c echo.Context) *domain.Identity {
	return middleware.IdentityFrom(c)
}

// actor returns the subject to attribute mutations to in the audit trail.
// Unauthenticated requests (public routes) yield the empty string.
func actor(c echo.Context) string {
	if id := identity(c); id != nil {
		return id.Subject
	}
	return ""
}
