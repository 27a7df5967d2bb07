package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

// Config describes the login-throttle store.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds dialing and the startup ping. Zero means dialTimeout.
	Timeout time.Duration
}

func (c Config) options() *redis.Options {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = dialTimeout
	}
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
}

// Connect opens a client and refuses to return it until PING succeeds, so a
// misconfigured REDIS_ADDR fails startup instead of the first login.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts := cfg.options()
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()

	if err := Ping(pingCtx, client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// Ping is the readiness check for the throttle store.
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
