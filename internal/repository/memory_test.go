package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRateLimiter(t *testing.T) {
	limiter := NewMemoryRateLimiter(5, time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, 1)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should pass", i+1)
	}

	// Burst exhausted.
	allowed, err := limiter.Allow(ctx, 1)
	require.NoError(t, err)
	assert.False(t, allowed)

	// Other users have their own bucket.
	allowed, err = limiter.Allow(ctx, 2)
	require.NoError(t, err)
	assert.True(t, allowed)
}
