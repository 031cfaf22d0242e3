// Package metrics records run counters: submissions by kind and
// outcome, skips by reason, run totals.
package metrics

import "time"

// RunMetrics defines the interface for recording run metrics.
type RunMetrics interface {
	// RecordSubmission records one submitted entry and the
	// decoded outcome.
	RecordSubmission(kind, outcome string, duration time.Duration)
	// RecordSkip records an entry that was not submitted.
	RecordSkip(kind, reason string)
	// IncrementRunTotal increments the total run counter.
	IncrementRunTotal()
	// SetProgress sets the progress gauge (0..100).
	SetProgress(percent int)
}

// NoopMetrics is a no-op implementation of RunMetrics
// useful for testing or when metrics collection is disabled.
type NoopMetrics struct{}

func (NoopMetrics) RecordSubmission(_, _ string, _ time.Duration) {}
func (NoopMetrics) RecordSkip(_, _ string)                        {}
func (NoopMetrics) IncrementRunTotal()                            {}
func (NoopMetrics) SetProgress(_ int)                             {}
