package repository

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryRateLimiter approximates the Redis fixed-window counter with a
// per-user token bucket. Used standalone in tests and as the failover
// fallback when Redis is unreachable.
type MemoryRateLimiter struct {
	limiters sync.Map // map[int64]*rate.Limiter
	limit    int
	window   time.Duration
}

func NewMemoryRateLimiter(limit int, window time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		limit:  limit,
		window: window,
	}
}

func (m *MemoryRateLimiter) Allow(ctx context.Context, userID int64) (bool, error) {
	return m.getLimiter(userID).Allow(), nil
}

func (m *MemoryRateLimiter) getLimiter(userID int64) *rate.Limiter {
	if v, ok := m.limiters.Load(userID); ok {
		return v.(*rate.Limiter)
	}

	perSecond := rate.Limit(float64(m.limit) / m.window.Seconds())
	lim := rate.NewLimiter(perSecond, m.limit)
	actual, _ := m.limiters.LoadOrStore(userID, lim)
	return actual.(*rate.Limiter)
}
