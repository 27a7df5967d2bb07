package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string        `env:"PORT,                 default=8080"`
	Env         string        `env:"ENV,                  default=development"`
	LogLevel    string        `env:"LOG_LEVEL,            default=info"`
	JWTSecret   string        `env:"JWT_SECRET,           required"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,            default=168h"`
	CORSOrigins []string      `env:"CORS_ALLOWED_ORIGINS, default=*"`

	Admin AdminConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// AdminConfig holds the credentials the administrator is seeded with. The
// password is only ever hashed, never stored or logged.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=leads"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

// RedisConfig configures the login throttle store. An empty Addr disables
// throttling.
type RedisConfig struct {
	Addr             string        `env:"REDIS_ADDR"`
	Password         string        `env:"REDIS_PASSWORD"`
	DB               int           `env:"REDIS_DB,           default=0"`
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	LoginWindow      time.Duration `env:"LOGIN_WINDOW,       default=15m"`
}

// IsDevelopment reports whether human-friendly log output should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads a .env file when one exists, then the process environment.
// Variables already set in the environment win over the file.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith processes the configuration from an arbitrary lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
