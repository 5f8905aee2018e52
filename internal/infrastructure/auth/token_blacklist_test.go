package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClockedBlacklist() (*InMemoryTokenBlacklist, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	b := NewInMemoryTokenBlacklist()
	b.now = clock.now
	return b, clock
}

func TestInMemoryTokenBlacklist_RevokeUntilExpiry(t *testing.T) {
	ctx := context.Background()
	b, clock := newClockedBlacklist()

	require.NoError(t, b.Revoke(ctx, "session-1", time.Hour))

	revoked, err := b.IsRevoked(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = b.IsRevoked(ctx, "session-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	clock.advance(time.Hour)
	revoked, err = b.IsRevoked(ctx, "session-1")
	require.NoError(t, err)
	assert.False(t, revoked, "an expired token needs no revocation entry")
	assert.Zero(t, b.Len())
}

func TestInMemoryTokenBlacklist_IgnoresExpiredTokens(t *testing.T) {
	ctx := context.Background()
	b, _ := newClockedBlacklist()

	require.NoError(t, b.Revoke(ctx, "expired", 0))
	require.NoError(t, b.Revoke(ctx, "negative", -time.Second))
	assert.Zero(t, b.Len())
}

func TestInMemoryTokenBlacklist_SweepsExpiredEntries(t *testing.T) {
	ctx := context.Background()
	b, clock := newClockedBlacklist()

	for i := 0; i < sweepEvery-1; i++ {
		require.NoError(t, b.Revoke(ctx, fmt.Sprintf("old-%d", i), time.Minute))
	}
	clock.advance(2 * time.Minute)
	require.NoError(t, b.Revoke(ctx, "fresh", time.Hour))

	assert.Equal(t, 1, b.Len())
}

func TestRedisTokenBlacklist_WrapsConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	b := NewRedisTokenBlacklist(client)
	ctx := context.Background()

	err := b.Revoke(ctx, "jti-7", time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revoke session jti-7")

	_, err = b.IsRevoked(ctx, "jti-7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check revoked session jti-7")

	assert.NoError(t, b.Revoke(ctx, "jti-7", 0), "expired tokens never reach redis")
}
