package effects

import (
	"context"
	"time"

	"github.com/coreman2200/funtimes-scenestrip/internal/control"
)

// MinDelay bounds the worst-case refresh rate regardless of speed.
const MinDelay = 10 * time.Millisecond

// ScaledDelay shortens base as speed rises above SpeedDefault and stretches it
// below. Out-of-range speeds are clamped first.
func ScaledDelay(base time.Duration, speed int) time.Duration {
	s := control.Clamp(speed, control.SpeedMin, control.SpeedMax)
	d := base * control.SpeedDefault / time.Duration(s)
	if d < MinDelay {
		return MinDelay
	}
	return d
}

// SleepFunc suspends for d, returning early with ctx.Err() on cancellation.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc, backed by a timer.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
