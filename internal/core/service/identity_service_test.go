package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/taskdeck/employee-task-api/internal/core/domain"
)

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newTestIdentityService(repo *stubUserRepo, apiKeys []string) *IdentityService {
	return NewIdentityService(repo, "secret", "HS256", apiKeys, zerolog.Nop())
}

func seedUser(repo *stubUserRepo, username, role string, active bool) {
	repo.users[username] = &domain.User{
		ID:       username,
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
		IsActive: active,
	}
}

func TestIdentityService_VerifyBearer_Valid(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "alice", domain.RoleClient, true)
	svc := newTestIdentityService(repo, nil)

	token := signToken(t, jwt.SigningMethodHS256, "secret", jwt.MapClaims{
		"sub":  "alice",
		"role": domain.RoleClient,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	user, err := svc.VerifyBearer(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifyBearer returned error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}

	// Verification is pure: the same token verifies again.
	if _, err := svc.VerifyBearer(context.Background(), token); err != nil {
		t.Fatalf("second verification failed: %v", err)
	}
}

func TestIdentityService_VerifyBearer_Expired(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "alice", domain.RoleClient, true)
	svc := newTestIdentityService(repo, nil)

	token := signToken(t, jwt.SigningMethodHS256, "secret", jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	if _, err := svc.VerifyBearer(context.Background(), token); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestIdentityService_VerifyBearer_MissingExpiry(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "alice", domain.RoleClient, true)
	svc := newTestIdentityService(repo, nil)

	// A token without exp is rejected even though the signature is fine.
	token := signToken(t, jwt.SigningMethodHS256, "secret", jwt.MapClaims{
		"sub": "alice",
	})

	if _, err := svc.VerifyBearer(context.Background(), token); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestIdentityService_VerifyBearer_WrongSignatureOrAlgorithm(t *testing.T) {
	svc := newTestIdentityService(newStubUserRepo(), nil)
	claims := jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	}

	badSecret := signToken(t, jwt.SigningMethodHS256, "other-secret", claims)
	if _, err := svc.VerifyBearer(context.Background(), badSecret); err != domain.ErrInvalidToken {
		t.Fatalf("wrong secret: expected ErrInvalidToken, got %v", err)
	}

	// Right secret, wrong algorithm.
	badAlg := signToken(t, jwt.SigningMethodHS512, "secret", claims)
	if _, err := svc.VerifyBearer(context.Background(), badAlg); err != domain.ErrInvalidToken {
		t.Fatalf("wrong algorithm: expected ErrInvalidToken, got %v", err)
	}

	if _, err := svc.VerifyBearer(context.Background(), "not-a-token"); err != domain.ErrInvalidToken {
		t.Fatalf("garbage: expected ErrInvalidToken, got %v", err)
	}
}

func TestIdentityService_VerifyBearer_MissingSubject(t *testing.T) {
	svc := newTestIdentityService(newStubUserRepo(), nil)

	token := signToken(t, jwt.SigningMethodHS256, "secret", jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := svc.VerifyBearer(context.Background(), token); err != domain.ErrMalformedToken {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
}

func TestIdentityService_VerifyBearer_UnknownSubject(t *testing.T) {
	svc := newTestIdentityService(newStubUserRepo(), nil)

	token := signToken(t, jwt.SigningMethodHS256, "secret", jwt.MapClaims{
		"sub": "ghost",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := svc.VerifyBearer(context.Background(), token); err != domain.ErrUnknownSubject {
		t.Fatalf("expected ErrUnknownSubject, got %v", err)
	}
}

func TestIdentityService_VerifyAPIKey(t *testing.T) {
	svc := newTestIdentityService(newStubUserRepo(), []string{"key-one", "key-two"})

	if err := svc.VerifyAPIKey("key-two"); err != nil {
		t.Fatalf("expected key to be accepted, got %v", err)
	}
	if err := svc.VerifyAPIKey("key-three"); err != domain.ErrInvalidAPIKey {
		t.Fatalf("expected ErrInvalidAPIKey, got %v", err)
	}

	// No keys configured means no key is ever valid.
	empty := newTestIdentityService(newStubUserRepo(), nil)
	if err := empty.VerifyAPIKey("key-one"); err != domain.ErrInvalidAPIKey {
		t.Fatalf("expected ErrInvalidAPIKey with empty key set, got %v", err)
	}
}

func TestIdentityService_Resolve_BearerWins(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "alice", domain.RoleClient, true)
	svc := newTestIdentityService(repo, []string{"master-key"})

	token := signToken(t, jwt.SigningMethodHS256, "secret", jwt.MapClaims{
		"sub":  "alice",
		"role": domain.RoleClient,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	// Both credentials present: the bearer identity wins, including its
	// weaker client role.
	id := svc.Resolve(context.Background(), token, "master-key")
	if id == nil {
		t.Fatalf("expected identity, got nil")
	}
	if id.Subject != "alice" || id.Role != domain.RoleClient {
		t.Fatalf("unexpected identity: %+v", id)
	}
	if id.Synthetic() {
		t.Fatalf("bearer identity should carry its account")
	}
}

func TestIdentityService_Resolve_FallsThroughToAPIKey(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestIdentityService(repo, []string{"master-key"})

	expired := signToken(t, jwt.SigningMethodHS256, "secret", jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	// A failed bearer attempt alongside a valid key still authenticates.
	id := svc.Resolve(context.Background(), expired, "master-key")
	if id == nil {
		t.Fatalf("expected synthetic identity, got nil")
	}
	if id.Subject != domain.SyntheticSubject {
		t.Fatalf("expected subject %s, got %s", domain.SyntheticSubject, id.Subject)
	}
	if !id.IsAdmin() || !id.Synthetic() || !id.Active {
		t.Fatalf("unexpected synthetic identity: %+v", id)
	}
}

func TestIdentityService_Resolve_NoCredentials(t *testing.T) {
	svc := newTestIdentityService(newStubUserRepo(), []string{"master-key"})

	if id := svc.Resolve(context.Background(), "", ""); id != nil {
		t.Fatalf("expected nil identity, got %+v", id)
	}

	expired := signToken(t, jwt.SigningMethodHS256, "secret", jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	if id := svc.Resolve(context.Background(), expired, ""); id != nil {
		t.Fatalf("expected nil identity for failed bearer only, got %+v", id)
	}
	if id := svc.Resolve(context.Background(), "", "wrong-key"); id != nil {
		t.Fatalf("expected nil identity for bad key only, got %+v", id)
	}
}

func TestIdentityService_Resolve_InactiveUserStillResolves(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "bob", domain.RoleClient, false)
	svc := newTestIdentityService(repo, nil)

	token := signToken(t, jwt.SigningMethodHS256, "secret", jwt.MapClaims{
		"sub": "bob",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	// The identity resolves; the activity check is enforced per endpoint.
	id := svc.Resolve(context.Background(), token, "")
	if id == nil {
		t.Fatalf("expected identity, got nil")
	}
	if id.Active {
		t.Fatalf("expected inactive identity")
	}
}
