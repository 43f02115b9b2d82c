package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskdeck/employee-task-api/internal/core/domain"
)

// stubResolver resolves a fixed token and API key, recording what it saw.
type stubResolver struct {
	token    string
	apiKey   string
	identity *domain.Identity

	gotToken  string
	gotAPIKey string
}

func (r *stubResolver) Resolve(_ context.Context, bearerToken, apiKey string) *domain.Identity {
	r.gotToken = bearerToken
	r.gotAPIKey = apiKey
	if bearerToken == r.token && r.token != "" {
		return r.identity
	}
	if apiKey == r.apiKey && r.apiKey != "" {
		return domain.NewSyntheticAdmin()
	}
	return nil
}

func runIdentity(t *testing.T, resolver *stubResolver, mutate func(*http.Request)) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	mutate(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Identity(resolver)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	return c
}

func TestIdentityMiddleware_BearerToken(t *testing.T) {
	user := &domain.User{Username: "alice", Role: domain.RoleClient, IsActive: true}
	resolver := &stubResolver{token: "tok123", identity: domain.NewPersistedIdentity(user)}

	c := runIdentity(t, resolver, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer tok123")
	})

	id := IdentityFrom(c)
	if id == nil || id.Subject != "alice" {
		t.Fatalf("expected alice identity, got %+v", id)
	}
	if resolver.gotToken != "tok123" {
		t.Fatalf("resolver saw token %q", resolver.gotToken)
	}
}

func TestIdentityMiddleware_APIKey(t *testing.T) {
	resolver := &stubResolver{apiKey: "master-key"}

	c := runIdentity(t, resolver, func(req *http.Request) {
		req.Header.Set(APIKeyHeader, "master-key")
	})

	id := IdentityFrom(c)
	if id == nil || id.Subject != domain.SyntheticSubject {
		t.Fatalf("expected synthetic identity, got %+v", id)
	}
	if resolver.gotAPIKey != "master-key" {
		t.Fatalf("resolver saw api key %q", resolver.gotAPIKey)
	}
}

func TestIdentityMiddleware_NoCredentials(t *testing.T) {
	resolver := &stubResolver{}

	c := runIdentity(t, resolver, func(*http.Request) {})

	// The request still goes through; it just carries no identity.
	if id := IdentityFrom(c); id != nil {
		t.Fatalf("expected nil identity, got %+v", id)
	}
}

func TestIdentityMiddleware_MalformedAuthorizationHeader(t *testing.T) {
	resolver := &stubResolver{token: "tok123"}

	// A non-Bearer scheme is treated as no bearer credential at all.
	c := runIdentity(t, resolver, func(req *http.Request) {
		req.Header.Set("Authorization", "Token tok123")
	})

	if resolver.gotToken != "" {
		t.Fatalf("expected no token extracted, resolver saw %q", resolver.gotToken)
	}
	if id := IdentityFrom(c); id != nil {
		t.Fatalf("expected nil identity, got %+v", id)
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"BEARER abc", "abc"},
		{"Bearer  abc", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
	}
	for _, tc := range cases {
		if got := bearerToken(tc.header); got != tc.want {
			t.Errorf("bearerToken(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
