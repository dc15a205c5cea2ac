package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET, default=dev-only-secret"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`

	DevAuth  DevAuthConfig
	Keycloak KeycloakConfig
	Cache    CacheConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

// DevAuthConfig controls the development-only static user registry and
// login endpoint. When enabled, user lookups are served from the registry
// instead of Keycloak.
type DevAuthConfig struct {
	Enabled  bool          `env:"DEV_AUTH_ENABLED,   default=false"`
	Password string        `env:"DEV_AUTH_PASSWORD,  default=tops3cr3t"`
	TokenTTL time.Duration `env:"DEV_AUTH_TOKEN_TTL, default=24h"`
}

// KeycloakConfig locates the Keycloak realm. Either IssuerURI (the
// standard "https://host/realms/name" form) or the explicit
// ServerURL+Realm pair must be set in production.
type KeycloakConfig struct {
	IssuerURI    string `env:"KEYCLOAK_ISSUER_URI"`
	ServerURL    string `env:"KEYCLOAK_SERVER_URL"`
	Realm        string `env:"KEYCLOAK_REALM"`
	ClientID     string `env:"KEYCLOAK_CLIENT_ID"`
	ClientSecret string `env:"KEYCLOAK_CLIENT_SECRET"`
}

// CacheConfig tunes the in-memory user info cache and the optional
// Redis-backed second level.
type CacheConfig struct {
	MaxSize           int           `env:"USER_CACHE_MAX_SIZE,            default=1000"`
	ExpireAfterWrite  time.Duration `env:"USER_CACHE_EXPIRE_AFTER_WRITE,  default=15m"`
	ExpireAfterAccess time.Duration `env:"USER_CACHE_EXPIRE_AFTER_ACCESS, default=0"`
	RedisEnabled      bool          `env:"USER_CACHE_REDIS_ENABLED,       default=false"`
	RedisTTL          time.Duration `env:"USER_CACHE_REDIS_TTL,           default=1h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=identity_service"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
