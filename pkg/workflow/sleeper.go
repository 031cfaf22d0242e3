package workflow

import (
	"context"
	"time"
)

// Sleeper waits between steps. Implementations must return early
// with the context error when ctx is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerSleeper sleeps on a real timer.
type TimerSleeper struct{}

// Sleep waits d or until ctx is done.
func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Delays are the fixed waits of a run.
type Delays struct {
	// InterRequest follows every submitted entry.
	InterRequest time.Duration `yaml:"inter_request"`
	// PostAction follows an opened external action.
	PostAction time.Duration `yaml:"post_action"`
	// TimerPadding is added to an entry's declared timer.
	TimerPadding time.Duration `yaml:"timer_padding"`
}

// DefaultDelays returns the platform-safe defaults.
func DefaultDelays() Delays {
	return Delays{
		InterRequest: 7 * time.Second,
		PostAction:   15 * time.Second,
		TimerPadding: 7 * time.Second,
	}
}
