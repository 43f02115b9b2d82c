package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the immutable process configuration, loaded once at startup and
// passed into the components that need it. It is never re-read or mutated.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	Audit AuditConfig
}

type JWTConfig struct {
	Secret string `env:"JWT_SECRET"`
	// Algorithm names the signing method; only tokens signed with exactly
	// this algorithm are accepted.
	Algorithm         string `env:"JWT_ALGORITHM,          default=HS256"`
	ExpirationMinutes int    `env:"JWT_EXPIRATION_MINUTES, default=1440"`
}

type AuthConfig struct {
	// APIKeys is the set of accepted static keys, comma-separated in the
	// environment. Any one of them grants admin-level access.
	APIKeys            []string      `env:"API_KEYS"`
	LoginMaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS,   default=10"`
	LoginAttemptWindow time.Duration `env:"LOGIN_ATTEMPT_WINDOW, default=15m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=employee_tasks"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// TokenTTL returns the configured token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.ExpirationMinutes) * time.Minute
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
