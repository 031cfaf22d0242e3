package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"digital.vasic.sweepbot/pkg/browser"
	"digital.vasic.sweepbot/pkg/config"
	"digital.vasic.sweepbot/pkg/logging"
	"digital.vasic.sweepbot/pkg/metrics"
	"digital.vasic.sweepbot/pkg/notify"
	"digital.vasic.sweepbot/pkg/platform"
	"digital.vasic.sweepbot/pkg/report"
	"digital.vasic.sweepbot/pkg/settings"
	"digital.vasic.sweepbot/pkg/store"
	"digital.vasic.sweepbot/pkg/workflow"
)

const (
	dryRunFlagName      = "dry-run"
	dryRunFlagUsage     = "Log the entry payloads instead of submitting them"
	eventsAddrFlagName  = "events-addr"
	eventsAddrFlagUsage = "Serve run events over websocket on this address (overrides events.addr)"
	reportFlagName      = "report"
	reportFlagUsage     = "Write the JSON run report to this path (overrides reports.dir)"

	persistTimeout = 10 * time.Second
)

type runOptions struct {
	*rootOptions
	dryRun     bool
	eventsAddr string
	reportPath string
}

func newRunCommand(root *rootOptions) *cobra.Command {
	options := &runOptions{rootOptions: root}

	command := &cobra.Command{
		Use:   "run <campaign-url>",
		Short: "Enter every entry method of a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCampaign(cmd, options, args[0])
		},
	}
	command.Flags().BoolVar(&options.dryRun, dryRunFlagName, false, dryRunFlagUsage)
	command.Flags().StringVar(&options.eventsAddr, eventsAddrFlagName, "", eventsAddrFlagUsage)
	command.Flags().StringVar(&options.reportPath, reportFlagName, "", reportFlagUsage)
	return command
}

func runCampaign(cmd *cobra.Command, options *runOptions, campaignURL string) error {
	a, err := bootstrap(options.rootOptions)
	if err != nil {
		return err
	}
	defer a.close()
	cfg := a.cfg

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, cfg.Preferences.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var prefs settings.Store = db
	if cfg.Preferences.Backend == config.BackendFile {
		prefs = settings.NewFileStore(cfg.Preferences.Path)
	}

	client, err := newPlatformClient(a)
	if err != nil {
		return err
	}
	page, err := client.LoadPage(ctx, campaignURL)
	if err != nil {
		return fmt.Errorf("failed to load campaign: %w", err)
	}
	if page.EntryCount != nil {
		a.logger.Info("campaign loaded",
			logging.StringField("campaign", page.Giveaway.Campaign.Key),
			logging.IntField("total_entries", *page.EntryCount),
		)
	}

	table, err := a.table()
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	hub := notify.NewHub(runID)
	hub.OnEvent(consolePrinter(cmd.OutOrStdout()))

	engineOpts := []workflow.Option{
		workflow.WithTable(table),
		workflow.WithShortener(client),
		workflow.WithEmitter(hub),
		workflow.WithMetrics(metrics.NewMemoryMetrics()),
		workflow.WithLogger(a.logger),
		workflow.WithDelays(cfg.Delays),
		workflow.WithStaleThreshold(cfg.Run.StaleThreshold),
		workflow.WithBaseURL(cfg.Platform.BaseURL),
		workflow.WithIDGenerator(func() string { return runID }),
	}

	if cfg.Browser.Enabled {
		session := browser.NewSession(cfg.Browser.Config, a.logger)
		defer func() { _ = session.Close() }()
		if err := session.LoadCampaign(ctx, campaignURL); err != nil {
			return fmt.Errorf("failed to open campaign in browser: %w", err)
		}
		engineOpts = append(engineOpts,
			workflow.WithOpener(session),
			workflow.WithFraudSource(session),
		)
	} else {
		engineOpts = append(engineOpts,
			workflow.WithOpener(browser.NewLogOpener(a.logger)),
			workflow.WithFraudSource(browser.StaticFraud(a.secrets.FraudToken)),
		)
	}

	var transport workflow.Transport = client
	if options.dryRun {
		transport = platform.NewDryRunTransport(a.logger)
	}
	engine := workflow.NewEngine(transport, prefs, engineOpts...)

	input := workflow.Input{
		Giveaway:   page.Giveaway,
		Contestant: page.Contestant,
		PageURL:    campaignURL,
	}

	eventsAddr := cfg.Events.Addr
	if options.eventsAddr != "" {
		eventsAddr = options.eventsAddr
	}

	var (
		rep    *report.RunReport
		runErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	serveCtx, stopServing := context.WithCancel(gctx)
	defer stopServing()

	if eventsAddr != "" {
		server := notify.NewServer(
			eventsAddr, hub,
			notify.NewStatus(runID, page.Giveaway.Campaign.Key),
		)
		g.Go(func() error {
			return server.Start(serveCtx)
		})
		a.logger.Info("serving run events",
			logging.StringField("addr", eventsAddr),
		)
	}
	g.Go(func() error {
		defer stopServing()
		rep, runErr = engine.Run(gctx, input)
		return nil
	})
	serveErr := g.Wait()

	if rep != nil {
		rep.DryRun = options.dryRun
		persistRun(a, db, rep, options.reportPath)
		printSummary(cmd.OutOrStdout(), rep)
	}
	return errors.Join(runErr, serveErr)
}

func newPlatformClient(a *app) (*platform.Client, error) {
	opts := []platform.ClientOption{
		platform.WithBaseURL(a.cfg.Platform.BaseURL),
		platform.WithTimeout(a.cfg.Platform.Timeout),
		platform.WithLogger(a.logger),
	}
	if a.cfg.Platform.UserAgent != "" {
		opts = append(opts, platform.WithUserAgent(a.cfg.Platform.UserAgent))
	}
	if a.secrets.Cookie != "" {
		cookies, err := platform.ParseCookieHeader(a.secrets.Cookie)
		if err != nil {
			return nil, fmt.Errorf("invalid session cookie: %w", err)
		}
		opts = append(opts, platform.WithCookies(cookies))
	} else {
		a.logger.Warn("no session cookie set, entries will be refused")
	}
	return platform.NewClient(opts...), nil
}

// persistRun writes the report file, the history line and the
// database row. Failures are logged; the run already happened.
func persistRun(a *app, db *store.Store, rep *report.RunReport, reportPath string) {
	if reportPath == "" && a.cfg.Reports.Dir != "" {
		reportPath = filepath.Join(a.cfg.Reports.Dir, rep.ID+".json")
	}
	if reportPath != "" {
		if err := report.NewJSONReporter(true).WriteFile(reportPath, rep); err != nil {
			a.logger.Error("failed to write run report", logging.ErrorField(err))
			reportPath = ""
		}
	}

	if history := a.cfg.Reports.History; history != "" {
		err := os.MkdirAll(filepath.Dir(history), 0o755)
		if err == nil {
			err = report.AppendToHistory(history, rep, reportPath)
		}
		if err != nil {
			a.logger.Error("failed to append run history", logging.ErrorField(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := db.RecordRun(ctx, rep); err != nil {
		a.logger.Error("failed to record run", logging.ErrorField(err))
	}
}

// consolePrinter prints user-facing messages as they arrive.
func consolePrinter(w io.Writer) func(notify.Event) {
	return func(e notify.Event) {
		if e.Type != notify.EventMessage {
			return
		}
		fmt.Fprintf(w, "[%s] %s\n", e.Level, e.Message)
	}
}

func printSummary(w io.Writer, rep *report.RunReport) {
	fmt.Fprintf(w,
		"run %s %s: %d/%d submitted, %d accepted, %d skipped, %d errors, +%d entries in %s\n",
		rep.ID, rep.Outcome,
		rep.Submitted, rep.Total, rep.Accepted, rep.Skipped, rep.Errors,
		rep.WorthGained, rep.Duration.Round(time.Millisecond),
	)
	if rep.Message != "" {
		fmt.Fprintf(w, "%s: %s\n", rep.Severity, rep.Message)
	}
}
