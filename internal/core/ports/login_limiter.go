package ports

import "context"

// LoginLimiter throttles repeated failed logins per client key (an IP address).
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
