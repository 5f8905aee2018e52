package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist remembers session token ids revoked by logout until the
// token would have expired anyway.
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, remaining time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const revokedKeyPrefix = "quotes:session:revoked:"

// RedisTokenBlacklist shares revocations between server instances
type RedisTokenBlacklist struct {
	client redis.UniversalClient
}

func NewRedisTokenBlacklist(client redis.UniversalClient) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

// Revoke stores the id with the token's remaining lifetime as TTL.
// Tokens that already expired are ignored.
func (b *RedisTokenBlacklist) Revoke(ctx context.Context, jti string, remaining time.Duration) error {
	if remaining <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, revokedKeyPrefix+jti, 1, remaining).Err(); err != nil {
		return fmt.Errorf("revoke session %s: %w", jti, err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked session %s: %w", jti, err)
	}
	return n == 1, nil
}

// sweepEvery bounds how many revocations are added between expiry sweeps
const sweepEvery = 256

// InMemoryTokenBlacklist is the single instance fallback used when Redis is off
type InMemoryTokenBlacklist struct {
	mu      sync.Mutex
	expires map[string]time.Time
	adds    int
	now     func() time.Time
}

func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{expires: make(map[string]time.Time), now: time.Now}
}

func (b *InMemoryTokenBlacklist) Revoke(_ context.Context, jti string, remaining time.Duration) error {
	if remaining <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.expires[jti] = now.Add(remaining)
	b.adds++
	if b.adds%sweepEvery == 0 {
		for id, at := range b.expires {
			if !now.Before(at) {
				delete(b.expires, id)
			}
		}
	}
	return nil
}

func (b *InMemoryTokenBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	at, ok := b.expires[jti]
	if !ok {
		return false, nil
	}
	if !b.now().Before(at) {
		delete(b.expires, jti)
		return false, nil
	}
	return true, nil
}

// Len returns the number of tracked revocations, expired ones included
func (b *InMemoryTokenBlacklist) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.expires)
}

var (
	_ TokenBlacklist = (*RedisTokenBlacklist)(nil)
	_ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
)
