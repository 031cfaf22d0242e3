package workflow

import (
	"context"
	"sync"
	"time"

	"digital.vasic.sweepbot/pkg/entry"
	"digital.vasic.sweepbot/pkg/logging"
)

// livenessMonitor cancels a run whose heartbeat stays silent for
// longer than the stale threshold.
type livenessMonitor struct {
	heartbeat      *entry.ProgressReporter
	staleThreshold time.Duration
	cancel         context.CancelFunc
	logger         logging.Logger
}

// startLivenessMonitor starts the monitor goroutine. The returned
// stop function must be called when the run completes. The stuck
// channel is closed when the monitor gave up on the run.
//
// A zero threshold disables the monitor: stop is a no-op and
// stuck is nil.
func startLivenessMonitor(
	heartbeat *entry.ProgressReporter,
	staleThreshold time.Duration,
	cancel context.CancelFunc,
	logger logging.Logger,
) (stop func(), stuck <-chan struct{}) {
	if heartbeat == nil || staleThreshold <= 0 {
		return func() {}, nil
	}

	m := &livenessMonitor{
		heartbeat:      heartbeat,
		staleThreshold: staleThreshold,
		cancel:         cancel,
		logger:         logger,
	}

	stopCh := make(chan struct{})
	stuckCh := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		m.run(stopCh, stuckCh)
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(stopCh) })
		<-done
	}, stuckCh
}

func (m *livenessMonitor) run(
	stopCh <-chan struct{},
	stuckCh chan<- struct{},
) {
	timer := time.NewTimer(m.staleThreshold)
	defer timer.Stop()

	beats := m.heartbeat.Channel()

	for {
		select {
		case <-stopCh:
			return

		case _, ok := <-beats:
			if !ok {
				return
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(m.staleThreshold)

		case <-timer.C:
			if m.logger != nil {
				m.logger.Error("run stalled",
					logging.DurationField("stale_threshold", m.staleThreshold),
				)
			}
			close(stuckCh)
			m.cancel()
			return
		}
	}
}
