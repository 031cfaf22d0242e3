// Package notify carries run messages and progress to whoever is
// watching: the console, a websocket client, the run report.
package notify

import (
	"fmt"
	"time"
)

// Level is the severity of a user-facing message.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	// LevelDanger means the account may be at risk; the user
	// should stop using the bot for a while.
	LevelDanger Level = "danger"
)

// EventType distinguishes what an Event reports.
type EventType string

const (
	EventMessage  EventType = "message"
	EventProgress EventType = "progress"
	EventEntry    EventType = "entry"
	EventRun      EventType = "run"
)

// Event is one notification.
type Event struct {
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id,omitempty"`
	Level     Level     `json:"level,omitempty"`
	Message   string    `json:"message,omitempty"`
	Progress  int       `json:"progress,omitempty"`
	EntryID   string    `json:"entry_id,omitempty"`
	Kind      string    `json:"kind,omitempty"`
	Status    string    `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Message builds a message event.
func Message(level Level, format string, args ...any) Event {
	return Event{
		Type:    EventMessage,
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	}
}

// Progress builds a progress event; percent is clamped to 0..100.
func Progress(percent int) Event {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return Event{Type: EventProgress, Progress: percent}
}

// Emitter receives events.
type Emitter interface {
	Emit(Event)
}

// Discard drops every event.
type Discard struct{}

// Emit is a no-op.
func (Discard) Emit(Event) {}
