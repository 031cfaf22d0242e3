package workflow

import (
	"time"

	"digital.vasic.sweepbot/pkg/classifier"
	"digital.vasic.sweepbot/pkg/entry"
	"digital.vasic.sweepbot/pkg/logging"
	"digital.vasic.sweepbot/pkg/metrics"
	"digital.vasic.sweepbot/pkg/notify"
	"digital.vasic.sweepbot/pkg/platform"
)

// Option configures an Engine.
type Option func(*Engine)

// WithTable sets the classification table.
func WithTable(t *classifier.Table) Option {
	return func(e *Engine) {
		e.table = t
	}
}

// WithOpener sets the external action opener. The default logs
// the URL for the user to open.
func WithOpener(o Opener) Option {
	return func(e *Engine) {
		e.opener = o
	}
}

// WithShortener sets the client used for share actions. Without
// one, share actions fail.
func WithShortener(s Shortener) Option {
	return func(e *Engine) {
		e.shortener = s
	}
}

// WithFraudSource sets where the fraud token comes from.
func WithFraudSource(f FraudSource) Option {
	return func(e *Engine) {
		e.fraud = f
	}
}

// WithContestantUpdater sets who completes the contestant's
// details for campaigns that ask for them.
func WithContestantUpdater(u ContestantUpdater) Option {
	return func(e *Engine) {
		e.contestants = u
	}
}

// WithSigner sets the entry signer.
func WithSigner(s platform.Signer) Option {
	return func(e *Engine) {
		e.signer = s
	}
}

// WithEmitter sets the notification sink.
func WithEmitter(em notify.Emitter) Option {
	return func(e *Engine) {
		e.emitter = em
	}
}

// WithMetrics sets the run metrics recorder.
func WithMetrics(m metrics.RunMetrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithSleeper sets how the engine waits.
func WithSleeper(s Sleeper) Option {
	return func(e *Engine) {
		e.sleeper = s
	}
}

// WithDelays sets the fixed waits.
func WithDelays(d Delays) Option {
	return func(e *Engine) {
		e.delays = d
	}
}

// WithFillers sets the provider filler registry.
func WithFillers(f FillerRegistry) Option {
	return func(e *Engine) {
		e.fillers = f
	}
}

// WithProgressReporter publishes per-entry progress on p.
func WithProgressReporter(p *entry.ProgressReporter) Option {
	return func(e *Engine) {
		e.progress = p
	}
}

// WithStaleThreshold aborts a run that makes no progress for d.
// Zero, the default, disables the check. The threshold must
// exceed the longest wait a single entry can take.
func WithStaleThreshold(d time.Duration) Option {
	return func(e *Engine) {
		e.staleThreshold = d
	}
}

// WithBaseURL sets the platform origin used for share links.
func WithBaseURL(base string) Option {
	return func(e *Engine) {
		e.baseURL = base
	}
}

// WithIDGenerator sets how run ids are generated.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}
