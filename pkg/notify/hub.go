package notify

import (
	"sync"
	"time"
)

// Hub records events and fans them out to handlers.
type Hub struct {
	mu       sync.RWMutex
	runID    string
	events   []Event
	handlers []func(Event)
	stats    Stats
}

// Stats counts messages by level.
type Stats struct {
	Total    int           `json:"total"`
	Info     int           `json:"info"`
	Success  int           `json:"success"`
	Warnings int           `json:"warnings"`
	Errors   int           `json:"errors"`
	Danger   int           `json:"danger"`
	Progress int           `json:"progress"`
	Start    time.Time     `json:"start_time"`
	Duration time.Duration `json:"duration"`
}

// NewHub creates a hub stamping events with runID.
func NewHub(runID string) *Hub {
	return &Hub{
		runID:  runID,
		events: make([]Event, 0, 64),
		stats:  Stats{Start: time.Now()},
	}
}

// OnEvent registers a handler called for each event.
func (h *Hub) OnEvent(handler func(Event)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers = append(h.handlers, handler)
}

// Emit records an event and notifies all handlers.
func (h *Hub) Emit(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.RunID == "" {
		event.RunID = h.runID
	}

	h.mu.Lock()
	h.events = append(h.events, event)
	h.stats.Total++
	switch event.Type {
	case EventMessage:
		switch event.Level {
		case LevelInfo:
			h.stats.Info++
		case LevelSuccess:
			h.stats.Success++
		case LevelWarning:
			h.stats.Warnings++
		case LevelError:
			h.stats.Errors++
		case LevelDanger:
			h.stats.Danger++
		}
	case EventProgress:
		h.stats.Progress = event.Progress
	}
	handlers := make([]func(Event), len(h.handlers))
	copy(handlers, h.handlers)
	h.mu.Unlock()

	for _, fn := range handlers {
		fn(event)
	}
}

// Events returns a copy of all recorded events.
func (h *Hub) Events() []Event {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Event, len(h.events))
	copy(out, h.events)
	return out
}

// Messages returns the recorded message events.
func (h *Hub) Messages() []Event {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []Event
	for _, e := range h.events {
		if e.Type == EventMessage {
			out = append(out, e)
		}
	}
	return out
}

// ProgressHistory returns every reported progress value in order.
func (h *Hub) ProgressHistory() []int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []int
	for _, e := range h.events {
		if e.Type == EventProgress {
			out = append(out, e.Progress)
		}
	}
	return out
}

// Stats returns the current counters.
func (h *Hub) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s := h.stats
	s.Duration = time.Since(s.Start)
	return s
}
