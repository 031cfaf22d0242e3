package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"digital.vasic.sweepbot/pkg/classifier"
	"digital.vasic.sweepbot/pkg/entry"
)

const (
	explainFlagName  = "explain"
	explainFlagUsage = "Show why rules sharing the entry's tag did not match"
)

type classifyOptions struct {
	*rootOptions
	explain bool
}

func newClassifyCommand(root *rootOptions) *cobra.Command {
	options := &classifyOptions{rootOptions: root}

	command := &cobra.Command{
		Use:   "classify <records.json>",
		Short: "Classify entry methods read from a JSON file",
		Long: "Classify entry methods read from a JSON file. The file holds " +
			"either an array of entry methods or a giveaway object with an " +
			"entry_methods array.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(options.rootOptions)
			if err != nil {
				return err
			}
			defer a.close()

			table, err := a.table()
			if err != nil {
				return err
			}
			methods, err := readMethods(args[0])
			if err != nil {
				return err
			}
			return writeClassification(cmd.OutOrStdout(), table, methods, options.explain)
		},
	}
	command.Flags().BoolVar(&options.explain, explainFlagName, false, explainFlagUsage)
	return command
}

// readMethods accepts a bare array of entry methods or a giveaway.
func readMethods(path string) ([]entry.Method, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte("[")) {
		var methods []entry.Method
		if err := json.Unmarshal(data, &methods); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		return methods, nil
	}
	var g entry.Giveaway
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return g.EntryMethods, nil
}

func writeClassification(
	w io.Writer,
	table *classifier.Table,
	methods []entry.Method,
	explain bool,
) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tKIND\tSHAPE\tRULE")
	for i := range methods {
		m := &methods[i]
		kind, rule := classifier.Unknown, "-"
		if e, ok := table.Lookup(m); ok {
			kind, rule = e.Kind, e.Name
		}
		shape := "-"
		if kind != classifier.Unknown {
			shape = classifier.ShapeFor(kind).Type.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.EntryType, kind, shape, rule)
		if !explain || kind != classifier.Unknown {
			continue
		}
		diagnostics := table.Explain(m)
		if len(diagnostics) == 0 {
			fmt.Fprintf(tw, "\t\t\t\tno rule for tag %q\n", m.EntryType)
		}
		for _, d := range diagnostics {
			fmt.Fprintf(tw, "\t\t\t\t%s: %s\n", d.Name, d.Mismatch)
		}
	}
	return tw.Flush()
}
