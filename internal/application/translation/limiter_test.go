package translation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottle_SpacesCalls(t *testing.T) {
	th := NewThrottle(750 * time.Millisecond)

	now := time.Unix(1_700_000_000, 0)
	var slept []time.Duration
	th.SetClock(
		func() time.Time { return now },
		func(ctx context.Context, d time.Duration) error {
			slept = append(slept, d)
			now = now.Add(d)
			return nil
		},
	)

	// First call passes immediately, the second waits out the interval.
	require.NoError(t, th.Wait(context.Background()))
	assert.Empty(t, slept)

	require.NoError(t, th.Wait(context.Background()))
	require.Len(t, slept, 1)
	assert.Equal(t, 750*time.Millisecond, slept[0])
}

func TestThrottle_NoWaitAfterQuietPeriod(t *testing.T) {
	th := NewThrottle(750 * time.Millisecond)

	now := time.Unix(1_700_000_000, 0)
	var slept []time.Duration
	th.SetClock(
		func() time.Time { return now },
		func(ctx context.Context, d time.Duration) error {
			slept = append(slept, d)
			now = now.Add(d)
			return nil
		},
	)

	require.NoError(t, th.Wait(context.Background()))
	now = now.Add(2 * time.Second)
	require.NoError(t, th.Wait(context.Background()))
	assert.Empty(t, slept)
}

func TestThrottle_ContextCancelSurfaces(t *testing.T) {
	th := NewThrottle(750 * time.Millisecond)

	now := time.Unix(1_700_000_000, 0)
	th.SetClock(
		func() time.Time { return now },
		func(ctx context.Context, d time.Duration) error { return context.Canceled },
	)

	require.NoError(t, th.Wait(context.Background()))
	err := th.Wait(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestThrottle_DefaultInterval(t *testing.T) {
	th := NewThrottle(0)

	now := time.Unix(1_700_000_000, 0)
	var slept []time.Duration
	th.SetClock(
		func() time.Time { return now },
		func(ctx context.Context, d time.Duration) error {
			slept = append(slept, d)
			now = now.Add(d)
			return nil
		},
	)

	require.NoError(t, th.Wait(context.Background()))
	require.NoError(t, th.Wait(context.Background()))
	require.Len(t, slept, 1)
	assert.Equal(t, defaultMinInterval, slept[0])
}
