package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Mongo Mongo
	Redis Redis
	OAuth OAuth
	Seed  Seed

	// TokenStore selects the grant store backend: "memory" (default) or
	// "redis". The issuer and the access gate are agnostic to the choice.
	TokenStore   string `env:"TOKEN_STORE,   default=memory"`
	AuditWorkers int    `env:"AUDIT_WORKERS, default=4"`
}

type Mongo struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=event_registration"`
}

type Redis struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// OAuth seeds the single registered client. Reference defaults match the
// tutorial credentials; override them outside development.
type OAuth struct {
	ClientID        string        `env:"OAUTH_CLIENT_ID,         default=myApp"`
	ClientSecret    string        `env:"OAUTH_CLIENT_SECRET,     default=pass"`
	AccessTokenTTL  time.Duration `env:"OAUTH_ACCESS_TOKEN_TTL,  default=600s"`
	RefreshTokenTTL time.Duration `env:"OAUTH_REFRESH_TOKEN_TTL, default=3600s"`
}

// Seed describes the bootstrap accounts created at startup.
type Seed struct {
	AdminEmail    string `env:"SEED_ADMIN_EMAIL,    default=admin@eventdesk.local"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD, default=admin"`
	UserEmail     string `env:"SEED_USER_EMAIL,     default=user@eventdesk.local"`
	UserPassword  string `env:"SEED_USER_PASSWORD,  default=user"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
