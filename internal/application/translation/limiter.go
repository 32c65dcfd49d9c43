package translation

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

const defaultMinInterval = 750 * time.Millisecond

// Throttle spaces outbound translation calls so the free upstream API is
// never hammered. The clock is injectable for deterministic tests.
type Throttle struct {
	limiter *rate.Limiter
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
}

func NewThrottle(minInterval time.Duration) *Throttle {
	if minInterval <= 0 {
		minInterval = defaultMinInterval
	}
	return &Throttle{
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
		now:     time.Now,
		sleep:   sleepCtx,
	}
}

// Wait blocks until the next call is allowed or the context ends.
func (t *Throttle) Wait(ctx context.Context) error {
	r := t.limiter.ReserveN(t.now(), 1)
	delay := r.DelayFrom(t.now())
	if delay <= 0 {
		return nil
	}
	if err := t.sleep(ctx, delay); err != nil {
		r.CancelAt(t.now())
		return err
	}
	return nil
}

// SetClock replaces the time source and sleeper, for tests.
func (t *Throttle) SetClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) {
	t.now = now
	t.sleep = sleep
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
