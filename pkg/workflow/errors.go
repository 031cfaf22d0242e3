package workflow

import "errors"

// Outcome is how a run ended.
type Outcome string

const (
	// OutcomeDone means every entry was processed, or the loop
	// broke on an unknown platform error.
	OutcomeDone Outcome = "done"
	// OutcomeGracefulStop means an optional entry was reached
	// while mandatory entries were still incomplete.
	OutcomeGracefulStop Outcome = "graceful_stop"
	// OutcomeFatalAbort means the run was refused or aborted.
	OutcomeFatalAbort Outcome = "fatal_abort"
	// OutcomeCancelled means the context was cancelled.
	OutcomeCancelled Outcome = "cancelled"
)

// Severity grades an abort for the user.
type Severity string

const (
	// SeverityWarning is used for pre-run refusals the user can
	// fix in the settings.
	SeverityWarning Severity = "warning"
	// SeverityError is used for transport failures.
	SeverityError Severity = "error"
	// SeverityDanger means the account may be flagged.
	SeverityDanger Severity = "danger"
)

// ErrAborted matches every *AbortError.
var ErrAborted = errors.New("run aborted")

// AbortError ends a run early. It is returned for fatal aborts
// and cancellations; graceful stops are not errors.
type AbortError struct {
	Outcome  Outcome
	Severity Severity
	Message  string
	Err      error
}

func (e *AbortError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Is reports ErrAborted.
func (e *AbortError) Is(target error) bool {
	return target == ErrAborted
}

func (e *AbortError) Unwrap() error {
	return e.Err
}

func fatal(severity Severity, msg string, err error) *AbortError {
	return &AbortError{
		Outcome:  OutcomeFatalAbort,
		Severity: severity,
		Message:  msg,
		Err:      err,
	}
}

func cancelled(err error) *AbortError {
	return &AbortError{
		Outcome:  OutcomeCancelled,
		Severity: SeverityWarning,
		Message:  "run cancelled",
		Err:      err,
	}
}
