package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/taskdeck/employee-task-api/internal/core/domain"
)

// RequireAuth rejects requests that resolved to no identity. The message
// never reveals whether a credential was missing, expired or malformed.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := domain.RequireAuthenticated(IdentityFrom(c)); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// RequireAdmin rejects requests whose identity does not carry the admin role.
// The API-key synthetic identity qualifies.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := domain.RequireAdmin(IdentityFrom(c)); err != nil {
				return err
			}
			return next(c)
		}
	}
}
