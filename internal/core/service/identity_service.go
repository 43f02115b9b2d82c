package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/taskdeck/employee-task-api/internal/api/metrics"
	"github.com/taskdeck/employee-task-api/internal/core/domain"
	"github.com/taskdeck/employee-task-api/internal/core/ports"
)

// IdentityService verifies credentials and resolves at most one identity per
// request. Configuration (secret, algorithm, key set) is fixed at
// construction and never mutated.
type IdentityService struct {
	users   ports.UserRepository
	secret  []byte
	alg     string
	apiKeys []string
	log     zerolog.Logger
}

func NewIdentityService(users ports.UserRepository, jwtSecret, jwtAlgorithm string, apiKeys []string, log zerolog.Logger) *IdentityService {
	if jwtAlgorithm == "" {
		jwtAlgorithm = jwt.SigningMethodHS256.Alg()
	}
	return &IdentityService{
		users:   users,
		secret:  []byte(jwtSecret),
		alg:     jwtAlgorithm,
		apiKeys: apiKeys,
		log:     log,
	}
}

// VerifyBearer validates a bearer token end to end: signature and algorithm,
// mandatory expiry, mandatory subject, and account lookup. The only I/O is
// the single account lookup.
func (s *IdentityService) VerifyBearer(ctx context.Context, token string) (*domain.User, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{s.alg}),
		jwt.WithExpirationRequired(),
	)
	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) || errors.Is(err, jwt.ErrTokenRequiredClaimMissing) {
			metrics.TokenVerificationsTotal.WithLabelValues("expired").Inc()
			return nil, domain.ErrTokenExpired
		}
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrMalformedToken
	}

	user, err := s.users.FindByUsername(ctx, sub)
	if err != nil {
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnknownSubject
		}
		return nil, err
	}

	metrics.TokenVerificationsTotal.WithLabelValues("success").Inc()
	return user, nil
}

// VerifyAPIKey compares the presented key against every configured key in
// constant time. A nil error means the key is valid; it carries no subject,
// only admin-level authorization.
func (s *IdentityService) VerifyAPIKey(key string) error {
	valid := false
	for _, k := range s.apiKeys {
		if subtle.ConstantTimeCompare([]byte(key), []byte(k)) == 1 {
			valid = true
		}
	}
	if !valid {
		metrics.APIKeyAuthTotal.WithLabelValues("failure").Inc()
		return domain.ErrInvalidAPIKey
	}
	metrics.APIKeyAuthTotal.WithLabelValues("success").Inc()
	return nil
}

// Resolve applies the scheme precedence: a valid bearer token wins outright;
// a failed bearer attempt is forgiven and the API key is tried next; when
// neither scheme succeeds the request is simply unauthenticated. An expired
// or malformed token sent alongside a valid API key therefore still
// authenticates via the key.
func (s *IdentityService) Resolve(ctx context.Context, bearerToken, apiKey string) *domain.Identity {
	if bearerToken != "" {
		user, err := s.VerifyBearer(ctx, bearerToken)
		if err == nil {
			return domain.NewPersistedIdentity(user)
		}
		s.log.Debug().Err(err).Msg("bearer verification failed, trying api key")
	}

	if apiKey != "" {
		if err := s.VerifyAPIKey(apiKey); err == nil {
			return domain.NewSyntheticAdmin()
		}
		s.log.Debug().Msg("api key rejected")
	}

	return nil
}
