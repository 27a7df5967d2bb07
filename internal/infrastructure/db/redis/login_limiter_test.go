package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, max int, window time.Duration) (*LoginLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginLimiter(client, max, window), mr
}

func mustAllow(t *testing.T, l *LoginLimiter, key string, want bool) {
	t.Helper()
	ok, err := l.Allow(context.Background(), key)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if ok != want {
		t.Fatalf("Allow(%q) = %v, want %v", key, ok, want)
	}
}

func TestNewLoginLimiter_Defaults(t *testing.T) {
	l := NewLoginLimiter(redis.NewClient(&redis.Options{}), 0, 0)
	if l.maxAttempts != defaultMaxAttempts || l.window != defaultWindow {
		t.Fatalf("unexpected defaults: %d %s", l.maxAttempts, l.window)
	}

	l = NewLoginLimiter(redis.NewClient(&redis.Options{}), 3, time.Minute)
	if l.maxAttempts != 3 || l.window != time.Minute {
		t.Fatalf("unexpected config: %d %s", l.maxAttempts, l.window)
	}
}

func TestLoginLimiter_BlocksAtMaxAttempts(t *testing.T) {
	l, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()
	ip := "203.0.113.7"

	mustAllow(t, l, ip, true)
	for i := 0; i < 2; i++ {
		if err := l.RecordFailure(ctx, ip); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	mustAllow(t, l, ip, true)

	if err := l.RecordFailure(ctx, ip); err != nil {
		t.Fatalf("record: %v", err)
	}
	mustAllow(t, l, ip, false)

	// Other clients are unaffected.
	mustAllow(t, l, "198.51.100.1", true)
}

func TestLoginLimiter_CounterAlwaysHasTTL(t *testing.T) {
	l, mr := newTestLimiter(t, 5, time.Minute)
	ctx := context.Background()

	if err := l.RecordFailure(ctx, "203.0.113.7"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if ttl := mr.TTL("login:fail:203.0.113.7"); ttl != time.Minute {
		t.Fatalf("expected 1m TTL after first failure, got %s", ttl)
	}

	mr.FastForward(20 * time.Second)
	if err := l.RecordFailure(ctx, "203.0.113.7"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if ttl := mr.TTL("login:fail:203.0.113.7"); ttl != 40*time.Second {
		t.Fatalf("later failures must not extend the window, TTL %s", ttl)
	}
}

func TestLoginLimiter_WindowExpiryUnblocks(t *testing.T) {
	l, mr := newTestLimiter(t, 2, time.Minute)
	ctx := context.Background()
	ip := "203.0.113.7"

	for i := 0; i < 2; i++ {
		if err := l.RecordFailure(ctx, ip); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	mustAllow(t, l, ip, false)

	mr.FastForward(time.Minute + time.Second)
	mustAllow(t, l, ip, true)
}

func TestLoginLimiter_ResetClearsCounter(t *testing.T) {
	l, mr := newTestLimiter(t, 2, time.Minute)
	ctx := context.Background()
	ip := "203.0.113.7"

	for i := 0; i < 2; i++ {
		if err := l.RecordFailure(ctx, ip); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if err := l.Reset(ctx, ip); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if mr.Exists("login:fail:" + ip) {
		t.Fatalf("counter key still present after reset")
	}
	mustAllow(t, l, ip, true)
}

func TestLoginLimiter_StoreDown(t *testing.T) {
	l, mr := newTestLimiter(t, 2, time.Minute)
	mr.Close()

	if _, err := l.Allow(context.Background(), "203.0.113.7"); err == nil {
		t.Fatalf("expected error when redis is down")
	}
	if err := l.RecordFailure(context.Background(), "203.0.113.7"); err == nil {
		t.Fatalf("expected error when redis is down")
	}
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	if err == nil {
		t.Fatalf("expected error for unreachable redis")
	}
}

func TestConnect_PingsServer(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	if err := Ping(context.Background(), client); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
