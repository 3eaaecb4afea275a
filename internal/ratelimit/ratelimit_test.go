package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ghulam-Abbas-65/QR/internal/ratelimit"
	"github.com/Ghulam-Abbas-65/QR/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	err error
}

func (s *failingStore) Record(_ context.Context, _ string, _ time.Duration) (int64, error) {
	return 0, s.err
}

func TestLimiter_Allow(t *testing.T) {
	limits := []ratelimit.LimitConfig{{Window: time.Minute, Max: 3}}

	t.Run("allows requests under the limit", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(store.NewRateLimitMemoryStore(), nil)

		for range 3 {
			allowed, exceeded, err := limiter.Allow(context.Background(), "client1", "POST /api/qr/url", limits)

			require.NoError(t, err)
			assert.True(t, allowed)
			assert.Nil(t, exceeded)
		}
	})

	t.Run("denies requests over the limit and names the limit hit", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(store.NewRateLimitMemoryStore(), nil)

		for range 3 {
			allowed, _, err := limiter.Allow(context.Background(), "client1", "POST /api/qr/url", limits)
			require.NoError(t, err)
			assert.True(t, allowed)
		}

		allowed, exceeded, err := limiter.Allow(context.Background(), "client1", "POST /api/qr/url", limits)

		require.NoError(t, err)
		assert.False(t, allowed)
		require.NotNil(t, exceeded)
		assert.Equal(t, int64(3), exceeded.Config.Max)
		assert.Equal(t, int64(4), exceeded.Count)
	})

	t.Run("tracks clients independently", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(store.NewRateLimitMemoryStore(), nil)

		for range 3 {
			allowed, _, _ := limiter.Allow(context.Background(), "client1", "route", limits)
			assert.True(t, allowed)
		}

		allowed, _, _ := limiter.Allow(context.Background(), "client1", "route", limits)
		assert.False(t, allowed, "client1 should be rate limited")

		allowed, _, err := limiter.Allow(context.Background(), "client2", "route", limits)

		require.NoError(t, err)
		assert.True(t, allowed, "client2 should still be allowed")
	})

	t.Run("tracks routes independently", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(store.NewRateLimitMemoryStore(), nil)

		for range 3 {
			allowed, _, _ := limiter.Allow(context.Background(), "client1", "create", limits)
			assert.True(t, allowed)
		}

		allowed, _, err := limiter.Allow(context.Background(), "client1", "redirect", limits)

		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("enforces the tightest of multiple windows", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(store.NewRateLimitMemoryStore(), nil)

		multi := []ratelimit.LimitConfig{
			{Window: time.Minute, Max: 2},
			{Window: time.Hour, Max: 100},
		}

		for range 2 {
			allowed, _, _ := limiter.Allow(context.Background(), "client1", "route", multi)
			assert.True(t, allowed)
		}

		allowed, exceeded, err := limiter.Allow(context.Background(), "client1", "route", multi)

		require.NoError(t, err)
		assert.False(t, allowed)
		require.NotNil(t, exceeded)
		assert.Equal(t, time.Minute, exceeded.Config.Window)
	})

	t.Run("falls back to the default limits", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(
			store.NewRateLimitMemoryStore(),
			[]ratelimit.LimitConfig{{Window: time.Minute, Max: 1}},
		)

		allowed, _, _ := limiter.Allow(context.Background(), "client1", "route", nil)
		assert.True(t, allowed)

		allowed, _, _ = limiter.Allow(context.Background(), "client1", "route", nil)
		assert.False(t, allowed)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		storeErr := errors.New("backend down")
		limiter := ratelimit.NewLimiter(&failingStore{err: storeErr}, nil)

		allowed, _, err := limiter.Allow(context.Background(), "client1", "route", limits)

		assert.False(t, allowed)
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("allows again after the window expires", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(store.NewRateLimitMemoryStore(), nil)

		short := []ratelimit.LimitConfig{{Window: 50 * time.Millisecond, Max: 1}}

		allowed, _, _ := limiter.Allow(context.Background(), "client1", "route", short)
		assert.True(t, allowed)

		allowed, _, _ = limiter.Allow(context.Background(), "client1", "route", short)
		assert.False(t, allowed)

		time.Sleep(60 * time.Millisecond)

		allowed, _, err := limiter.Allow(context.Background(), "client1", "route", short)

		require.NoError(t, err)
		assert.True(t, allowed)
	})
}
