package entry

import (
	"sync"
	"time"
)

// ProgressUpdate is one progress report of a run.
type ProgressUpdate struct {
	Timestamp time.Time `json:"timestamp"`

	// Processed is the number of entries the run is done with.
	Processed int `json:"processed"`

	// Total is the number of entries in the run.
	Total int `json:"total"`

	// Message describes the entry that was just processed.
	Message string `json:"message"`
}

// Percent returns the progress as an integer percentage.
func (u ProgressUpdate) Percent() int {
	if u.Total <= 0 {
		return 100
	}
	return u.Processed * 100 / u.Total
}

// ProgressReporter publishes progress updates on a buffered
// channel. Slow consumers never block the run: updates are
// dropped when the buffer is full.
type ProgressReporter struct {
	ch     chan ProgressUpdate
	mu     sync.Mutex
	last   *ProgressUpdate
	closed bool
}

// NewProgressReporter creates a buffered progress channel.
func NewProgressReporter() *ProgressReporter {
	return &ProgressReporter{
		ch: make(chan ProgressUpdate, 64),
	}
}

// Report emits a progress update. Safe to call from any
// goroutine.
func (p *ProgressReporter) Report(
	processed, total int,
	msg string,
) {
	update := ProgressUpdate{
		Timestamp: time.Now(),
		Processed: processed,
		Total:     total,
		Message:   msg,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = &update
	if p.closed {
		return
	}
	select {
	case p.ch <- update:
	default:
	}
}

// Channel returns the read-only channel of updates.
func (p *ProgressReporter) Channel() <-chan ProgressUpdate {
	return p.ch
}

// LastUpdate returns the most recent update, or nil.
func (p *ProgressReporter) LastUpdate() *ProgressUpdate {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Close signals that no more updates will be sent. Safe to call
// multiple times.
func (p *ProgressReporter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.ch)
	}
}
