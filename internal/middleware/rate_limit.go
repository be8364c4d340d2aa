package middleware

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/Payphone-Digital/auth-service/pkg/circuit"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Duration
}

// Limiter counts requests per key within a window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// MemoryLimiter is a per-process sliding window. Each call prunes only its
// own key; idle keys are swept at most once per window.
type MemoryLimiter struct {
	mu         sync.Mutex
	hits       map[string][]time.Time
	maxRequest int
	window     time.Duration
	lastSweep  time.Time
	now        func() time.Time
}

func NewMemoryLimiter(maxRequest int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		hits:       make(map[string][]time.Time),
		maxRequest: maxRequest,
		window:     window,
		now:        time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(now)
	}

	hits := l.prune(l.hits[key], now)
	d := Decision{Limit: l.maxRequest, Reset: l.window}
	if len(hits) > 0 {
		d.Reset = l.window - now.Sub(hits[0])
	}
	if len(hits) >= l.maxRequest {
		l.hits[key] = hits
		return d, nil
	}

	l.hits[key] = append(hits, now)
	d.Allowed = true
	d.Remaining = l.maxRequest - len(hits) - 1
	return d, nil
}

// prune drops hits that left the window. hits is in arrival order.
func (l *MemoryLimiter) prune(hits []time.Time, now time.Time) []time.Time {
	i := 0
	for i < len(hits) && now.Sub(hits[i]) >= l.window {
		i++
	}
	return hits[i:]
}

func (l *MemoryLimiter) sweep(now time.Time) {
	for key, hits := range l.hits {
		if valid := l.prune(hits, now); len(valid) > 0 {
			l.hits[key] = valid
		} else {
			delete(l.hits, key)
		}
	}
	l.lastSweep = now
}

// WindowCounter is the store a RedisLimiter counts in.
type WindowCounter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RedisLimiter is a fixed window shared by every instance behind the same
// Redis.
type RedisLimiter struct {
	counter    WindowCounter
	maxRequest int
	window     time.Duration
}

func NewRedisLimiter(counter WindowCounter, maxRequest int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{counter: counter, maxRequest: maxRequest, window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	count, ttl, err := l.counter.IncrWindow(ctx, constants.CacheKeyRateLimit+key, l.window)
	if err != nil {
		return Decision{}, err
	}
	remaining := l.maxRequest - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= int64(l.maxRequest),
		Limit:     l.maxRequest,
		Remaining: remaining,
		Reset:     ttl,
	}, nil
}

// FallbackLimiter asks primary through a circuit breaker and answers from
// fallback while the breaker is open or primary errors.
type FallbackLimiter struct {
	primary  Limiter
	fallback Limiter
	breaker  *circuit.Breaker
}

func NewFallbackLimiter(primary, fallback Limiter, breaker *circuit.Breaker) *FallbackLimiter {
	return &FallbackLimiter{primary: primary, fallback: fallback, breaker: breaker}
}

func (l *FallbackLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	var d Decision
	err := l.breaker.Execute(func() error {
		var err error
		d, err = l.primary.Allow(ctx, key)
		return err
	})
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, circuit.ErrCircuitOpen) {
		logger.WarnWithContext(ctx, "Primary rate limiter failed, using fallback").
			Err(err).
			Log()
	}
	return l.fallback.Allow(ctx, key)
}

// RateLimit throttles by client IP and route. When the limiter itself fails
// the request is let through.
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ip := c.ClientIP()
		key := ip + ":" + c.FullPath()

		d, err := limiter.Allow(ctx, key)
		if err != nil {
			logger.ErrorWithContext(ctx, "Rate limiter unavailable").
				String("client_ip", ip).
				Err(err).
				Log()
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(d.Reset).Unix(), 10))

		if !d.Allowed {
			logger.WarnWithContext(ctx, "Rate limit exceeded").
				String("client_ip", ip).
				String("method", c.Request.Method).
				String("path", c.Request.URL.Path).
				Int("max_requests", d.Limit).
				Duration(d.Reset).
				Log()
			c.Header(constants.HeaderRetryAfter, strconv.Itoa(int(d.Reset.Seconds()+0.5)))
			abortWithError(c, apperrors.ErrRateLimited)
			return
		}

		c.Next()
	}
}
