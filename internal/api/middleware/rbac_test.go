package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskdeck/employee-task-api/internal/core/domain"
)

func newGateContext(identity *domain.Identity) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set(identityKey, identity)
	}
	return c
}

func TestRequireAuth(t *testing.T) {
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	// No identity at all is rejected.
	if err := RequireAuth()(next)(newGateContext(nil)); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	// Any resolved identity passes, client role included.
	client := domain.NewPersistedIdentity(&domain.User{Username: "alice", Role: domain.RoleClient, IsActive: true})
	if err := RequireAuth()(next)(newGateContext(client)); err != nil {
		t.Fatalf("expected client to pass, got %v", err)
	}
}

func TestRequireAdmin(t *testing.T) {
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	if err := RequireAdmin()(next)(newGateContext(nil)); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	client := domain.NewPersistedIdentity(&domain.User{Username: "alice", Role: domain.RoleClient, IsActive: true})
	if err := RequireAdmin()(next)(newGateContext(client)); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	admin := domain.NewPersistedIdentity(&domain.User{Username: "root", Role: domain.RoleAdmin, IsActive: true})
	if err := RequireAdmin()(next)(newGateContext(admin)); err != nil {
		t.Fatalf("expected admin to pass, got %v", err)
	}

	// The API-key synthetic identity counts as admin.
	if err := RequireAdmin()(next)(newGateContext(domain.NewSyntheticAdmin())); err != nil {
		t.Fatalf("expected synthetic admin to pass, got %v", err)
	}
}
