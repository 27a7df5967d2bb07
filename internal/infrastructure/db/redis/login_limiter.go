package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leaddesk/leads-api/internal/core/ports"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

var _ ports.LoginLimiter = (*LoginLimiter)(nil)

// LoginLimiter counts failed logins per client key in Redis.
// Key format: login:fail:<key>. The counter expires window after the first
// failure; once it reaches maxAttempts the key is blocked until expiry.
// Requires Redis 7 (EXPIRE NX).
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

// Allow reports whether key may attempt another login.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(key)).Int()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("login limiter get: %w", err)
	}
	return n < l.maxAttempts, nil
}

// RecordFailure increments the failure counter. INCR and EXPIRE NX go out in
// one MULTI/EXEC, so the counter never exists without a TTL and the window is
// anchored at the first failure.
func (l *LoginLimiter) RecordFailure(ctx context.Context, key string) error {
	k := l.key(key)
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, l.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("login limiter record: %w", err)
	}
	return nil
}

// Reset clears the counter (used on successful login).
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.key(key)).Err()
}

func (l *LoginLimiter) key(key string) string {
	return "login:fail:" + key
}
