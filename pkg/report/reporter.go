// Package report renders run reports and keeps a run history.
package report

import "io"

// Reporter defines the interface for generating run reports.
type Reporter interface {
	// GenerateReport renders a single run report.
	GenerateReport(run *RunReport) ([]byte, error)

	// WriteReport writes a report to the specified writer.
	WriteReport(w io.Writer, run *RunReport) error
}
