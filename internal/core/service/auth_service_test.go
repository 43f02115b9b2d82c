package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/employee-task-api/internal/core/domain"
	"github.com/taskdeck/employee-task-api/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUsernameTaken
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = "user_" + strconv.Itoa(r.seq)
	r.users[copy.Username] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

type stubLimiter struct {
	locked   bool
	checkErr error
	failures map[string]int
	resets   map[string]int
}

func newStubLimiter() *stubLimiter {
	return &stubLimiter{failures: make(map[string]int), resets: make(map[string]int)}
}

func (l *stubLimiter) TooManyAttempts(_ context.Context, _ string) (bool, error) {
	return l.locked, l.checkErr
}

func (l *stubLimiter) RecordFailure(_ context.Context, username string) error {
	l.failures[username]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, username string) error {
	l.resets[username]++
	return nil
}

func newTestAuthService(repo ports.UserRepository, limiter ports.LoginLimiter) *AuthService {
	return NewAuthService(repo, limiter, nil, "secret", "HS256", time.Hour, zerolog.Nop())
}

func register(t *testing.T, svc *AuthService, username, email, role string) *domain.User {
	t.Helper()
	_, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: username,
		Email:    email,
		Password: "s3cret",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func TestAuthService_Register_DefaultsToClient(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	token, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.Role != domain.RoleClient {
		t.Fatalf("expected role client, got %s", user.Role)
	}
	if !user.IsActive {
		t.Fatalf("expected new account to be active")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_BootstrapAdmin(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	// First account ever may claim admin.
	user := register(t, svc, "root", "root@example.com", domain.RoleAdmin)
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected admin, got %s", user.Role)
	}

	// Once any account exists, self-registering as admin is rejected.
	_, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "mallory",
		Email:    "mallory@example.com",
		Password: "pass123",
		Role:     domain.RoleAdmin,
	})
	if err != domain.ErrAdminSelfRegister {
		t.Fatalf("expected ErrAdminSelfRegister, got %v", err)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	_, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "pass123",
		Role:     "superuser",
	})
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_DuplicateFields(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)
	register(t, svc, "bob", "bob@example.com", "")

	_, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "bob",
		Email:    "other@example.com",
		Password: "pass123",
	})
	if err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	_, _, err = svc.Register(context.Background(), ports.RegisterInput{
		Username: "robert",
		Email:    "bob@example.com",
		Password: "pass123",
	})
	if err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	limiter := newStubLimiter()
	svc := newTestAuthService(newStubUserRepo(), limiter)
	register(t, svc, "carol", "carol@example.com", "")

	token, user, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if limiter.resets["carol"] != 1 {
		t.Fatalf("expected limiter reset on success")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != "carol" {
		t.Fatalf("expected sub carol, got %v", claims["sub"])
	}
	if claims["role"] != domain.RoleClient {
		t.Fatalf("expected role client, got %v", claims["role"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("expected exp claim")
	}
}

func TestAuthService_Login_GenericFailures(t *testing.T) {
	repo := newStubUserRepo()
	limiter := newStubLimiter()
	svc := newTestAuthService(repo, limiter)
	register(t, svc, "dave", "dave@example.com", "")

	// Unknown username and wrong password produce the same error.
	if _, _, err := svc.Login(context.Background(), "nobody", "whatever"); err != domain.ErrInvalidCredentials {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "dave", "wrongpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}

	// So does a deactivated account with the right password.
	repo.users["dave"].IsActive = false
	if _, _, err := svc.Login(context.Background(), "dave", "s3cret"); err != domain.ErrInvalidCredentials {
		t.Fatalf("inactive user: expected ErrInvalidCredentials, got %v", err)
	}

	if limiter.failures["dave"] != 2 {
		t.Fatalf("expected 2 recorded failures for dave, got %d", limiter.failures["dave"])
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	limiter := newStubLimiter()
	limiter.locked = true
	svc := newTestAuthService(newStubUserRepo(), limiter)

	if _, _, err := svc.Login(context.Background(), "eve", "pass"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_LimiterFailsOpen(t *testing.T) {
	limiter := newStubLimiter()
	limiter.checkErr = context.DeadlineExceeded
	svc := newTestAuthService(newStubUserRepo(), limiter)
	register(t, svc, "frank", "frank@example.com", "")

	if _, _, err := svc.Login(context.Background(), "frank", "s3cret"); err != nil {
		t.Fatalf("expected login to succeed when limiter is down, got %v", err)
	}
}

func TestAuthService_CreateAdmin_ForcesRole(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	user, err := svc.CreateAdmin(context.Background(), ports.RegisterInput{
		Username: "grace",
		Email:    "grace@example.com",
		Password: "pass123",
		Role:     domain.RoleClient, // ignored
	})
	if err != nil {
		t.Fatalf("CreateAdmin returned error: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", user.Role)
	}
}
