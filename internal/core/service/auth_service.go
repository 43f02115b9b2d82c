package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/employee-task-api/internal/api/metrics"
	"github.com/taskdeck/employee-task-api/internal/core/domain"
	"github.com/taskdeck/employee-task-api/internal/core/ports"
)

// AuthService implements registration, login and token issuance. Tokens are
// stateless and self-contained; there is no server-side session store and no
// revocation; a token stays valid until its expiry.
type AuthService struct {
	repo     ports.UserRepository
	limiter  ports.LoginLimiter // optional
	audit    ports.AuditSink    // optional
	secret   []byte
	alg      string
	tokenTTL time.Duration
	log      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, limiter ports.LoginLimiter, audit ports.AuditSink, jwtSecret, jwtAlgorithm string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if jwtAlgorithm == "" {
		jwtAlgorithm = jwt.SigningMethodHS256.Alg()
	}
	return &AuthService{
		repo:     repo,
		limiter:  limiter,
		audit:    audit,
		secret:   []byte(jwtSecret),
		alg:      jwtAlgorithm,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// Register creates an account and returns a freshly issued token alongside it.
// The first account ever created may claim the admin role (bootstrap rule);
// afterwards a requested admin role is rejected and admin accounts must be
// created through CreateAdmin by an existing admin.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleClient
	}
	if !domain.ValidRole(role) {
		return "", nil, domain.ErrInvalidCredentials
	}

	if role == domain.RoleAdmin {
		count, err := s.repo.Count(ctx)
		if err != nil {
			return "", nil, err
		}
		if count > 0 {
			return "", nil, domain.ErrAdminSelfRegister
		}
	}

	user, err := s.createUser(ctx, input, role)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(role).Inc()
	s.record(user.ID, domain.AuditCreated, user.Username)
	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("user registered")

	return token, user, nil
}

// Login authenticates username+password. Unknown username, wrong password
// and inactive account all produce the same generic failure so callers
// cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.tooManyAttempts(ctx, username) {
		metrics.LoginsTotal.WithLabelValues("locked").Inc()
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, err
		}
		return "", nil, s.loginFailed(ctx, username)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, s.loginFailed(ctx, username)
	}

	if !user.IsActive {
		return "", nil, s.loginFailed(ctx, username)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	if s.limiter != nil {
		if resetErr := s.limiter.Reset(ctx, username); resetErr != nil {
			s.log.Warn().Err(resetErr).Msg("failed to reset login attempts")
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", user.Username).Msg("user logged in")

	return token, user, nil
}

// CreateAdmin creates an account with role forced to admin, regardless of the
// role the caller supplied. Authorization is enforced upstream.
func (s *AuthService) CreateAdmin(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	user, err := s.createUser(ctx, input, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(domain.RoleAdmin).Inc()
	s.record(user.ID, domain.AuditCreated, user.Username)
	s.log.Info().Str("username", user.Username).Msg("admin user created")

	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

// createUser hashes the password and inserts the account. The lookups are a
// pre-check for field-specific errors only; the store's unique indexes are
// the race-safe guard and the repository maps duplicate-key failures to the
// same errors.
func (s *AuthService) createUser(ctx context.Context, input ports.RegisterInput, role string) (*domain.User, error) {
	if input.Username == "" || input.Password == "" || input.Email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	})
}

// generateToken mints a signed token carrying subject, role and an absolute
// expiry of issue time + configured lifetime.
func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.Username,
		"role": user.Role,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.GetSigningMethod(s.alg), claims)
	return t.SignedString(s.secret)
}

// tooManyAttempts consults the limiter; limiter outages fail open so redis is
// never a hard login dependency.
func (s *AuthService) tooManyAttempts(ctx context.Context, username string) bool {
	if s.limiter == nil {
		return false
	}
	locked, err := s.limiter.TooManyAttempts(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Msg("login limiter check failed, allowing attempt")
		return false
	}
	return locked
}

func (s *AuthService) loginFailed(ctx context.Context, username string) error {
	if s.limiter != nil {
		if err := s.limiter.RecordFailure(ctx, username); err != nil {
			s.log.Warn().Err(err).Msg("failed to record login failure")
		}
	}
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	return domain.ErrInvalidCredentials
}

func (s *AuthService) record(entityID string, action domain.AuditAction, actor string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuditEventInput{
		Entity:    "user",
		EntityID:  entityID,
		Action:    action,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
	})
}
