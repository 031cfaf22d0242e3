package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRulesCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the classification rules in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(root)
			if err != nil {
				return err
			}
			defer a.close()

			table, err := a.table()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tNAME\tTAG\tKIND")
			for i, e := range table.Entries() {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, e.Name, e.Rule.Tag, e.Kind)
			}
			return tw.Flush()
		},
	}
}
