package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// Cache stores JSON encoded values with a TTL
type Cache interface {
	// Get decodes the value stored under key into dest, or returns ErrCacheMiss
	Get(ctx context.Context, key string, dest any) error

	// Set encodes value and stores it under key for ttl
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// DeletePrefix removes every key starting with prefix
	DeletePrefix(ctx context.Context, prefix string) error
}
