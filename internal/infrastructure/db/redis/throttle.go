package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	throttleWindow      = 15 * time.Minute
	defaultMaxFailures  = 10
	throttleKeyTemplate = "login_failures:%s"
)

// LoginThrottle counts failed login attempts per username in Redis.
// Key format: login_failures:<username>, expiring after throttleWindow.
type LoginThrottle struct {
	client      *redis.Client
	maxFailures int64
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
// If maxFailures <= 0, defaultMaxFailures is used.
func NewLoginThrottle(client *redis.Client, maxFailures int64) *LoginThrottle {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	return &LoginThrottle{client: client, maxFailures: maxFailures}
}

// Allow reports whether username is still under the failure limit.
func (t *LoginThrottle) Allow(ctx context.Context, username string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(username)).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n < t.maxFailures, nil
}

// RecordFailure increments the failure counter and refreshes its expiry.
func (t *LoginThrottle) RecordFailure(ctx context.Context, username string) error {
	key := t.key(username)
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, throttleWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, username string) error {
	return t.client.Del(ctx, t.key(username)).Err()
}

func (t *LoginThrottle) key(username string) string {
	return fmt.Sprintf(throttleKeyTemplate, username)
}
