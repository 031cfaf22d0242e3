// Package workflow drives one campaign run: it orders the entry
// methods, gates each one against the session and the user's
// preferences, performs the external action an entry needs,
// submits the entry and interprets the platform's reply.
//
// A run is sequential. Every wait goes through a Sleeper and
// honours the run context, so a run can be cancelled between
// entries and during any wait.
package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"digital.vasic.sweepbot/pkg/browser"
	"digital.vasic.sweepbot/pkg/classifier"
	"digital.vasic.sweepbot/pkg/entry"
	"digital.vasic.sweepbot/pkg/logging"
	"digital.vasic.sweepbot/pkg/metrics"
	"digital.vasic.sweepbot/pkg/notify"
	"digital.vasic.sweepbot/pkg/platform"
	"digital.vasic.sweepbot/pkg/report"
	"digital.vasic.sweepbot/pkg/settings"
)

// Transport submits an entry and decodes the reply.
type Transport interface {
	Submit(
		ctx context.Context,
		campaignKey, entryID string,
		payload *platform.Payload,
	) (platform.Response, error)
}

// Opener opens an external action, such as a tweet intent.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// Shortener shortens the campaign share link.
type Shortener interface {
	Shorten(
		ctx context.Context,
		s entry.Shortener,
		longURL string,
	) (string, error)
}

// FraudSource provides the fraud token sent with every entry.
type FraudSource interface {
	FraudToken(ctx context.Context) (string, error)
}

// ContestantUpdater completes the contestant's details when a
// campaign asks for them. A nil contestant with a nil error keeps
// the current one.
type ContestantUpdater interface {
	SetContestant(
		ctx context.Context,
		campaignKey string,
		details entry.ContestantDetails,
	) (*entry.Contestant, error)
}

// Input is what a run needs from the campaign page.
type Input struct {
	Giveaway   entry.Giveaway
	Contestant entry.Contestant
	// PageURL is appended to tweeted entry text.
	PageURL string
}

// Engine runs campaigns. It holds no per-run state and may be
// reused for consecutive runs.
type Engine struct {
	transport      Transport
	store          settings.Store
	table          *classifier.Table
	opener         Opener
	shortener      Shortener
	fraud          FraudSource
	contestants    ContestantUpdater
	signer         platform.Signer
	emitter        notify.Emitter
	metrics        metrics.RunMetrics
	logger         logging.Logger
	sleeper        Sleeper
	delays         Delays
	fillers        FillerRegistry
	progress       *entry.ProgressReporter
	staleThreshold time.Duration
	baseURL        string
	newID          func() string
}

// NewEngine creates an engine submitting through transport and
// crediting accepted entries to store. A transport that is also a
// ContestantUpdater completes contestant details unless
// WithContestantUpdater says otherwise.
func NewEngine(
	transport Transport,
	store settings.Store,
	opts ...Option,
) *Engine {
	e := &Engine{
		transport: transport,
		store:     store,
		table:     classifier.DefaultTable(),
		fraud:     browser.StaticFraud(""),
		signer:    platform.MD5Signer{},
		emitter:   notify.Discard{},
		metrics:   metrics.NoopMetrics{},
		logger:    logging.NullLogger{},
		sleeper:   TimerSleeper{},
		delays:    DefaultDelays(),
		fillers:   DefaultFillers(),
		baseURL:   platform.DefaultBaseURL,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.opener == nil {
		e.opener = browser.NewLogOpener(e.logger)
	}
	if e.contestants == nil {
		if u, ok := transport.(ContestantUpdater); ok {
			e.contestants = u
		}
	}
	return e
}

// Run processes every entry method of in.Giveaway. The report is
// always returned. The error is nil when the run finished or
// stopped gracefully, and an *AbortError when it was refused,
// aborted or cancelled.
func (e *Engine) Run(
	ctx context.Context,
	in Input,
) (*report.RunReport, error) {
	g := &in.Giveaway
	rep := report.NewRunReport(e.newID(), g.Campaign.Key, len(g.EntryMethods))
	rep.CampaignName = g.Campaign.Name
	rep.URL = in.PageURL

	r := &run{
		Engine: e,
		in:     &in,
		report: rep,
		log: e.logger.WithFields(
			logging.StringField("run_id", rep.ID),
			logging.StringField("campaign", g.Campaign.Key),
		),
	}

	e.metrics.IncrementRunTotal()
	r.emit(notify.Event{Type: notify.EventRun, Status: "running"})
	r.log.Info("run started",
		logging.IntField("entries", len(g.EntryMethods)),
	)

	outcome := OutcomeDone
	abort := r.prepare(ctx)
	if abort == nil {
		runCtx, cancel := context.WithCancel(ctx)
		heartbeat := entry.NewProgressReporter()
		stop, stuck := startLivenessMonitor(
			heartbeat, e.staleThreshold, cancel, r.log,
		)
		r.heartbeat = heartbeat

		outcome, abort = r.loop(runCtx)

		stop()
		heartbeat.Close()
		cancel()
		if stuck != nil && abort != nil {
			select {
			case <-stuck:
				abort = fatal(
					SeverityError,
					"no progress for "+e.staleThreshold.String(),
					abort.Err,
				)
			default:
			}
		}
	}
	return r.finish(outcome, abort)
}
