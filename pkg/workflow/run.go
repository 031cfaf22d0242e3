package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"digital.vasic.sweepbot/pkg/classifier"
	"digital.vasic.sweepbot/pkg/entry"
	"digital.vasic.sweepbot/pkg/logging"
	"digital.vasic.sweepbot/pkg/metrics"
	"digital.vasic.sweepbot/pkg/notify"
	"digital.vasic.sweepbot/pkg/report"
	"digital.vasic.sweepbot/pkg/settings"
)

// control tells the loop what to do after an entry.
type control int

const (
	// ctlNext moves on immediately.
	ctlNext control = iota
	// ctlSubmitted moves on after the inter-request delay.
	ctlSubmitted
	// ctlBreak ends the loop; the run is still done.
	ctlBreak
	// ctlStop ends the run gracefully without touching the
	// current entry.
	ctlStop
	// ctlAbort ends the run with step.abort.
	ctlAbort
)

// step is the outcome of one entry.
type step struct {
	control control
	status  string
	reason  string
	// cause keys the skip metrics.
	cause string
	worth int
	abort *AbortError

	// response is the decoded reply kind of a submitted entry.
	response string
	elapsed  time.Duration
}

// run is the state of one Engine.Run call.
type run struct {
	*Engine

	in         *Input
	prefs      settings.Preferences
	gate       *settings.Gate
	state      *RunState
	fraudToken string
	report     *report.RunReport
	log        logging.Logger
	heartbeat  *entry.ProgressReporter

	// kind is the classification of the entry in progress.
	kind classifier.Kind
}

func (r *run) emit(event notify.Event) {
	if event.RunID == "" {
		event.RunID = r.report.ID
	}
	r.emitter.Emit(event)
}

func (r *run) notify(level notify.Level, format string, args ...any) {
	r.emit(notify.Message(level, format, args...))
}

func (r *run) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.log.Warn(msg)
	r.notify(notify.LevelWarning, "%s", msg)
}

// skip finishes an entry without a submission.
func skip(status, reason, cause string) step {
	return step{control: ctlNext, status: status, reason: reason, cause: cause}
}

// fail finishes an entry with a per-entry error; the run goes on.
func (r *run) fail(format string, args ...any) step {
	msg := fmt.Sprintf(format, args...)
	r.log.Error(msg)
	r.notify(notify.LevelError, "%s", msg)
	return step{
		control: ctlNext,
		status:  entry.StatusError,
		reason:  msg,
		cause:   "error",
	}
}

func aborted(a *AbortError) step {
	status := entry.StatusError
	if a.Outcome == OutcomeCancelled {
		status = entry.StatusNotAttempted
	}
	return step{
		control: ctlAbort,
		status:  status,
		reason:  a.Error(),
		cause:   string(a.Outcome),
		abort:   a,
	}
}

func (r *run) sleep(ctx context.Context, d time.Duration) *AbortError {
	if err := r.sleeper.Sleep(ctx, d); err != nil {
		return cancelled(err)
	}
	return nil
}

// prepare runs the pre-run checks and loads what the loop needs.
func (r *run) prepare(ctx context.Context) *AbortError {
	if !r.in.Contestant.LoggedIn() {
		return fatal(
			SeverityWarning,
			"You have to login to gleam.io to use the bot.",
			nil,
		)
	}

	prefs, err := r.store.Load(ctx)
	if err != nil {
		return fatal(SeverityError, "failed to load preferences", err)
	}

	session := entry.NewSession(&r.in.Contestant)
	warnings, err := prefs.Preflight(func(provider string) bool {
		_, ok := session.Providers[provider]
		return ok
	})
	for _, w := range warnings {
		r.warn("Please check your settings: %s.", w)
	}
	if err != nil {
		return fatal(
			SeverityWarning,
			"run refused until the settings are corrected",
			err,
		)
	}

	if r.in.Giveaway.Campaign.AdditionalContestantDetails {
		if a := r.completeContestant(ctx); a != nil {
			return a
		}
		session = entry.NewSession(&r.in.Contestant)
	}

	token, err := r.fraud.FraudToken(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return cancelled(ctx.Err())
		}
		return fatal(SeverityError, "failed to get fraud token", err)
	}

	r.prefs = prefs
	r.gate = settings.NewGate(prefs)
	r.state = NewRunState(&r.in.Giveaway, session)
	r.fraudToken = token
	return nil
}

// completeContestant sends the details the campaign asks for and
// adopts the contestant the platform stored.
func (r *run) completeContestant(ctx context.Context) *AbortError {
	if r.contestants == nil {
		return fatal(
			SeverityError,
			"failed to set contestant",
			errors.New("no contestant updater configured"),
		)
	}
	key := r.in.Giveaway.Campaign.Key
	updated, err := r.contestants.SetContestant(
		ctx, key, r.in.Contestant.Details(),
	)
	if err != nil {
		if ctx.Err() != nil {
			return cancelled(ctx.Err())
		}
		return fatal(SeverityError, "failed to set contestant", err)
	}
	if updated != nil {
		r.in.Contestant = *updated
	}
	r.log.Info("contestant details completed",
		logging.StringField("campaign", key),
	)
	return nil
}

func (r *run) loop(ctx context.Context) (Outcome, *AbortError) {
	queue := Order(r.in.Giveaway.EntryMethods)
	for i, m := range queue {
		if err := ctx.Err(); err != nil {
			r.notAttempted(queue[i:], "run cancelled")
			return OutcomeCancelled, cancelled(err)
		}
		r.heartbeat.Report(r.state.Processed, r.state.Total, m.ID)

		r.kind = classifier.Unknown
		start := time.Now()
		st := r.process(ctx, m)

		if st.control == ctlStop {
			r.notAttempted(queue[i:], "mandatory entries incomplete")
			return OutcomeGracefulStop, nil
		}

		r.record(m, st, start)
		if st.control == ctlAbort {
			r.notAttempted(queue[i+1:], st.abort.Message)
			return st.abort.Outcome, st.abort
		}
		r.advance(m)

		switch st.control {
		case ctlBreak:
			r.notAttempted(queue[i+1:], "run ended after a platform error")
			return OutcomeDone, nil
		case ctlSubmitted:
			if a := r.sleep(ctx, r.delays.InterRequest); a != nil {
				r.notAttempted(queue[i+1:], "run cancelled")
				return OutcomeCancelled, a
			}
		}
	}
	return OutcomeDone, nil
}

// process takes one entry through the gate, value resolution and
// submission.
func (r *run) process(ctx context.Context, m *entry.Method) step {
	if r.state.Completed(m.ID) {
		r.log.Debug("already entered, skipping",
			logging.StringField("entry_id", m.ID),
		)
		return skip(entry.StatusCompleted, "already completed", "completed")
	}

	if !m.Mandatory && r.state.MandatoryPending() {
		r.warn("Unable to try some entry methods because some mandatory entry methods were not successfully completed.")
		return step{control: ctlStop}
	}

	if m.ActionsRequired > r.state.ActionsNumber {
		r.warn("Unable to try an entry method because it requires more actions to be done.")
		return skip(
			entry.StatusSkipped,
			fmt.Sprintf("requires %d actions", m.ActionsRequired),
			"actions_required",
		)
	}

	kind, ok := r.table.Classify(m)
	if !ok {
		r.unknown(m)
		return skip(entry.StatusSkipped, "unknown entry method", "unknown")
	}
	r.kind = kind
	shape := classifier.ShapeFor(kind)
	if shape.Type == classifier.ShapeUnimplemented {
		r.warn("%s", shape.Reason)
		return skip(entry.StatusSkipped, shape.Reason, "unimplemented")
	}

	if allowed, pref := r.gate.Allows(kind, shape); !allowed {
		msg := fmt.Sprintf(
			"Ignored an entry since %s is disabled by your settings.", pref,
		)
		r.log.Info(msg, logging.StringField("entry_id", m.ID))
		r.notify(notify.LevelInfo, "%s", msg)
		return skip(entry.StatusDisabled, pref+" is disabled", "disabled")
	}

	if m.RequiresAuthentication && !r.state.Linked(m.Provider) {
		r.warn("Gleam.io wants you to be logged to %s.", m.Provider)
		return skip(
			entry.StatusSkipped,
			"not logged to "+m.Provider,
			"authentication",
		)
	}

	d, done := r.resolve(ctx, m, shape)
	if done != nil {
		return *done
	}

	if m.RequiresDetails {
		switch v := d.Value.(type) {
		case nil:
			return r.fail("Null found but expected value")
		case string:
			if strings.TrimSpace(v) == "" {
				return r.fail("Empty value found but expected value")
			}
		}
	}

	if timer, ok := m.TimerSeconds(); ok {
		wait := time.Duration(timer)*time.Second + r.delays.TimerPadding
		if a := r.sleep(ctx, wait); a != nil {
			return aborted(a)
		}
	}

	return r.submit(ctx, m, d)
}

// unknown reports an entry no rule matched.
func (r *run) unknown(m *entry.Method) {
	r.log.Debug("unknown entry method",
		logging.StringField("entry_type", m.EntryType),
		logging.StringField("workflow", entry.Deref(m.Workflow)),
		logging.StringField("template", m.Template),
		logging.StringField("method_type", entry.Deref(m.MethodType)),
		logging.LogField("configs", m.Configs()),
	)
	if r.prefs.DisplayDevMessages {
		r.notify(notify.LevelWarning, "%s", describe(m))
	}
}

// describe renders the discriminator fields of m.
func describe(m *entry.Method) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Unknown entry method: %s\n", m.EntryType)
	fmt.Fprintf(&b, "workflow: %s\n", quoteOpt(m.Workflow))
	fmt.Fprintf(&b, "template: %q\n", m.Template)
	fmt.Fprintf(&b, "method_type: %s\n", quoteOpt(m.MethodType))
	b.WriteString("configs: [\n")
	for _, c := range m.Configs() {
		fmt.Fprintf(&b, "\t%s,\n", quoteOpt(c))
	}
	b.WriteString("]")
	return b.String()
}

func quoteOpt(s *string) string {
	if s == nil {
		return "None"
	}
	return fmt.Sprintf("%q", *s)
}

func (r *run) advance(m *entry.Method) {
	pct := r.state.Advance()
	r.emit(notify.Progress(pct))
	r.metrics.SetProgress(pct)
	r.heartbeat.Report(r.state.Processed, r.state.Total, m.ID)
	if r.progress != nil {
		r.progress.Report(r.state.Processed, r.state.Total, m.ID)
	}
}

func (r *run) record(m *entry.Method, st step, start time.Time) {
	res := entry.Result{
		EntryID:   m.ID,
		EntryType: m.EntryType,
		Status:    st.status,
		Reason:    st.reason,
		Worth:     st.worth,
		Mandatory: m.Mandatory,
		StartTime: start,
		Duration:  time.Since(start),
	}
	if r.kind != classifier.Unknown {
		res.Kind = r.kind.String()
	}
	r.report.Add(res)

	if st.response != "" {
		r.metrics.RecordSubmission(res.Kind, st.response, st.elapsed)
	} else {
		r.metrics.RecordSkip(res.Kind, st.cause)
	}

	r.emit(notify.Event{
		Type:    notify.EventEntry,
		EntryID: m.ID,
		Kind:    res.Kind,
		Status:  st.status,
		Message: st.reason,
	})
}

// notAttempted records the entries a run never reached.
func (r *run) notAttempted(rest []*entry.Method, reason string) {
	for _, m := range rest {
		r.report.Add(entry.Result{
			EntryID:   m.ID,
			EntryType: m.EntryType,
			Status:    entry.StatusNotAttempted,
			Reason:    reason,
			Mandatory: m.Mandatory,
		})
	}
}

type summarizer interface {
	Summary() (submissions, skips []metrics.Counter)
}

func (r *run) finish(
	outcome Outcome,
	abort *AbortError,
) (*report.RunReport, error) {
	rep := r.report
	if abort != nil {
		outcome = abort.Outcome
		rep.Severity = string(abort.Severity)
		rep.Message = abort.Error()
		level := notify.LevelWarning
		switch abort.Severity {
		case SeverityError:
			level = notify.LevelError
		case SeverityDanger:
			level = notify.LevelDanger
		}
		r.log.Error("run aborted",
			logging.StringField("outcome", string(outcome)),
			logging.StringField("severity", string(abort.Severity)),
			logging.StringField("reason", abort.Error()),
		)
		r.notify(level, "%s", abort.Error())
	}

	if r.state != nil {
		rep.Progress = r.state.Percent()
	}
	if s, ok := r.metrics.(summarizer); ok {
		rep.Submissions, rep.Skips = s.Summary()
	}
	rep.Finish(string(outcome), time.Now())

	r.emit(notify.Event{Type: notify.EventRun, Status: string(outcome)})
	r.log.Info("run finished",
		logging.StringField("outcome", string(outcome)),
		logging.IntField("submitted", rep.Submitted),
		logging.IntField("accepted", rep.Accepted),
		logging.IntField("worth_gained", rep.WorthGained),
		logging.StringField("duration", rep.Duration.String()),
	)

	if abort != nil {
		return rep, abort
	}
	return rep, nil
}
