package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrtoldo/backend/internal/interfaces/http/dto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter counts requests per key in fixed windows
type Limiter interface {
	// Allow records a request for key and reports whether it is within the
	// limit, along with the requests left in the current window
	Allow(ctx context.Context, key string) (allowed bool, remaining int, err error)
	// Limit is the number of requests allowed per window
	Limit() int
}

// RateLimiter is an in-memory fixed window Limiter for single instance deployments
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	window  time.Duration
	now     func() time.Time
}

type window struct {
	count int
	start time.Time
}

// NewRateLimiter creates a new in-memory rate limiter
func NewRateLimiter(limit int, windowSize time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		window:  windowSize,
		now:     time.Now,
	}
}

// Allow implements Limiter. Expired windows are swept on each call.
func (rl *RateLimiter) Allow(_ context.Context, key string) (bool, int, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for k, w := range rl.clients {
		if now.Sub(w.start) >= rl.window {
			delete(rl.clients, k)
		}
	}

	w, ok := rl.clients[key]
	if !ok {
		w = &window{start: now}
		rl.clients[key] = w
	}
	if w.count >= rl.limit {
		return false, 0, nil
	}
	w.count++
	return true, rl.limit - w.count, nil
}

// Limit implements Limiter
func (rl *RateLimiter) Limit() int {
	return rl.limit
}

const rateLimitKeyPrefix = "quotes:ratelimit:"

// RedisRateLimiter is a fixed window Limiter shared by every instance through Redis
type RedisRateLimiter struct {
	client redis.UniversalClient
	limit  int
	window time.Duration
}

// NewRedisRateLimiter creates a rate limiter on an existing Redis client
func NewRedisRateLimiter(client redis.UniversalClient, limit int, windowSize time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, limit: limit, window: windowSize}
}

// Allow implements Limiter using INCR and a window-long expiry on the first hit
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	bucket := time.Now().UnixNano() / int64(rl.window)
	redisKey := rateLimitKeyPrefix + key + ":" + strconv.FormatInt(bucket, 10)

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, rl.limit, fmt.Errorf("rate limit counter: %w", err)
	}

	count := int(incr.Val())
	if count > rl.limit {
		return false, 0, nil
	}
	return true, rl.limit - count, nil
}

// Limit implements Limiter
func (rl *RedisRateLimiter) Limit() int {
	return rl.limit
}

// NewLimiter returns a Redis limiter when client is set, otherwise an in-memory one
func NewLimiter(client redis.UniversalClient, limit int, windowSize time.Duration) Limiter {
	if client == nil {
		return NewRateLimiter(limit, windowSize)
	}
	return NewRedisRateLimiter(client, limit, windowSize)
}

// RateLimit limits requests per client IP
func RateLimit(limiter Limiter, logger *zap.Logger) gin.HandlerFunc {
	return rateLimit(limiter, logger, "api:", "Too many requests. Please try again later.")
}

// AuthRateLimit limits login attempts per client IP with its own budget
func AuthRateLimit(limiter Limiter, logger *zap.Logger) gin.HandlerFunc {
	return rateLimit(limiter, logger, "auth:", "Too many authentication attempts. Please try again later.")
}

func rateLimit(limiter Limiter, logger *zap.Logger, prefix, message string) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		key := prefix + c.ClientIP()

		allowed, remaining, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Fail open when the counter store is down
			logger.Warn("Rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeRateLimited, message, getRequestID(c)))
			return
		}
		c.Next()
	}
}
