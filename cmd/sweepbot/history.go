package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"digital.vasic.sweepbot/pkg/store"
)

const (
	limitFlagName  = "limit"
	limitFlagUsage = "Number of runs to show; 0 shows all"
	defaultLimit   = 20
)

func newHistoryCommand(root *rootOptions) *cobra.Command {
	limit := defaultLimit

	command := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(root)
			if err != nil {
				return err
			}
			defer a.close()

			db, err := store.Open(cmd.Context(), a.cfg.Preferences.Database)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			runs, err := db.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ENDED\tRUN\tCAMPAIGN\tOUTCOME\tSUBMITTED\tACCEPTED\tWORTH\tDURATION")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
					r.Timestamp.Local().Format(time.DateTime),
					r.RunID, r.CampaignKey, r.Outcome,
					r.Submitted, r.Accepted, r.WorthGained, r.Duration,
				)
			}
			return tw.Flush()
		},
	}
	command.Flags().IntVar(&limit, limitFlagName, defaultLimit, limitFlagUsage)
	return command
}
