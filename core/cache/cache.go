package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented cache with per-entry TTL. A nil value with a nil
// error means a miss (or an expired entry); callers decide how to refill.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
