package rate_test

import (
	"context"
	"testing"
	"time"

	"github.com/robalyx/airlock/internal/discord/rate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_SpacesRequests(t *testing.T) {
	t.Parallel()

	limiter := rate.New(20*time.Millisecond, 5*time.Millisecond)
	start := time.Now()

	for range 4 {
		require.NoError(t, limiter.WaitForNextSlot(t.Context()))
	}

	// The first slot is immediate, the remaining three are at least 15ms apart.
	assert.GreaterOrEqual(t, time.Since(start), 45*time.Millisecond)
}

func TestLimiter_Disabled(t *testing.T) {
	t.Parallel()

	limiter := rate.New(0, 0)
	start := time.Now()

	for range 100 {
		require.NoError(t, limiter.WaitForNextSlot(t.Context()))
	}
	assert.Less(t, time.Since(start), time.Second)

	var nilLimiter *rate.Limiter
	assert.NoError(t, nilLimiter.WaitForNextSlot(t.Context()))
}

func TestLimiter_Cancelled(t *testing.T) {
	t.Parallel()

	limiter := rate.New(time.Hour, 0)
	require.NoError(t, limiter.WaitForNextSlot(t.Context()))

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, limiter.WaitForNextSlot(ctx), context.DeadlineExceeded)
}

func TestLimiter_CancelledBeforeSlot(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	limiter := rate.New(time.Hour, 0)
	require.ErrorIs(t, limiter.WaitForNextSlot(ctx), context.Canceled)
	require.ErrorIs(t, limiter.WaitForNextSlot(ctx), context.Canceled)
}
