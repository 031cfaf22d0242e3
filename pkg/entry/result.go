package entry

import "time"

// Status constants for the outcome of one entry within a run.
const (
	StatusAccepted       = "accepted"
	StatusAlreadyEntered = "already_entered"
	StatusSubmitted      = "submitted"
	StatusCompleted      = "completed"
	StatusSkipped        = "skipped"
	StatusDisabled       = "disabled"
	StatusShared         = "shared"
	StatusError          = "error"
	StatusNotAttempted   = "not_attempted"
)

// Result captures what happened to one entry method during a
// run.
type Result struct {
	// EntryID is the entry method identifier.
	EntryID string `json:"entry_id"`

	// EntryType is the raw action-type tag.
	EntryType string `json:"entry_type"`

	// Kind is the classified action kind, empty when the entry
	// was never classified.
	Kind string `json:"kind,omitempty"`

	// Status is one of the Status* constants.
	Status string `json:"status"`

	// Reason explains skips and errors.
	Reason string `json:"reason,omitempty"`

	// Worth is the number of points credited, if any.
	Worth int `json:"worth,omitempty"`

	Mandatory bool `json:"mandatory"`

	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// Submitted reports whether a request reached the platform.
func (r *Result) Submitted() bool {
	switch r.Status {
	case StatusAccepted, StatusAlreadyEntered, StatusSubmitted:
		return true
	}
	return false
}

// IsFinal returns true if the status is a terminal state.
func (r *Result) IsFinal() bool {
	return r.Status != "" && r.Status != StatusNotAttempted
}
