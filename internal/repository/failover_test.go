package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (s *stubLimiter) Allow(ctx context.Context, userID int64) (bool, error) {
	s.calls++
	return s.allowed, s.err
}

func TestFailoverRateLimiter_UsesPrimary(t *testing.T) {
	primary := &stubLimiter{allowed: true}
	fallback := &stubLimiter{allowed: false}
	logger := zerolog.Nop()

	limiter := NewFailoverRateLimiter(primary, fallback, &logger)

	allowed, err := limiter.Allow(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, fallback.calls)
}

func TestFailoverRateLimiter_FallsBackOnError(t *testing.T) {
	primary := &stubLimiter{err: errors.New("connection refused")}
	fallback := &stubLimiter{allowed: true}
	logger := zerolog.Nop()

	limiter := NewFailoverRateLimiter(primary, fallback, &logger)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, 1)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, fallback.calls)

	// Within the cooldown the primary is not retried.
	_, err = limiter.Allow(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 2, fallback.calls)
}

func TestFailoverRateLimiter_RecoversAfterCooldown(t *testing.T) {
	primary := &stubLimiter{err: errors.New("connection refused")}
	fallback := &stubLimiter{allowed: true}
	logger := zerolog.Nop()

	limiter := NewFailoverRateLimiter(primary, fallback, &logger)
	ctx := context.Background()

	_, err := limiter.Allow(ctx, 1)
	require.NoError(t, err)

	// Simulate the cooldown having passed, then heal the primary.
	limiter.lastCheck.Store(time.Now().Add(-2 * time.Minute).UnixNano())
	primary.err = nil
	primary.allowed = true

	allowed, err := limiter.Allow(ctx, 1)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.False(t, limiter.isDown.Load())
}
