package notify

import (
	"sync"
	"time"
)

// Snapshot is the served view of a run.
type Snapshot struct {
	RunID       string    `json:"run_id"`
	Campaign    string    `json:"campaign,omitempty"`
	StartTime   time.Time `json:"start_time"`
	State       string    `json:"state"`
	Progress    int       `json:"progress"`
	Entries     int       `json:"entries"`
	Submitted   int       `json:"submitted"`
	Skipped     int       `json:"skipped"`
	Failed      int       `json:"failed"`
	LastMessage string    `json:"last_message,omitempty"`
	LastLevel   Level     `json:"last_level,omitempty"`
	Elapsed     string    `json:"elapsed"`
}

// Status is a live, concurrency-safe run snapshot.
type Status struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewStatus creates a running status.
func NewStatus(runID, campaign string) *Status {
	return &Status{snap: Snapshot{
		RunID:     runID,
		Campaign:  campaign,
		StartTime: time.Now(),
		State:     "running",
	}}
}

// Update folds event into the status.
func (s *Status) Update(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch event.Type {
	case EventProgress:
		s.snap.Progress = event.Progress
	case EventMessage:
		s.snap.LastMessage = event.Message
		s.snap.LastLevel = event.Level
	case EventEntry:
		s.snap.Entries++
		switch event.Status {
		case "accepted", "already_entered", "submitted":
			s.snap.Submitted++
		case "error":
			s.snap.Failed++
		default:
			s.snap.Skipped++
		}
	case EventRun:
		if event.Status != "" {
			s.snap.State = event.Status
		}
	}
}

// Snapshot returns a copy of the status.
func (s *Status) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.snap
	snap.Elapsed = time.Since(snap.StartTime).Round(time.Millisecond).String()
	return snap
}
