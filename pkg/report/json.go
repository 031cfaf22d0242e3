package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// JSONReporter generates JSON run reports.
type JSONReporter struct {
	pretty bool
}

// NewJSONReporter creates a new JSON reporter. When pretty is
// true, output is indented for readability.
func NewJSONReporter(pretty bool) *JSONReporter {
	return &JSONReporter{pretty: pretty}
}

// GenerateReport renders run as JSON.
func (r *JSONReporter) GenerateReport(run *RunReport) ([]byte, error) {
	if r.pretty {
		return json.MarshalIndent(run, "", "  ")
	}
	return json.Marshal(run)
}

// WriteReport writes a JSON report to the specified writer.
func (r *JSONReporter) WriteReport(w io.Writer, run *RunReport) error {
	data, err := r.GenerateReport(run)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes the report to path, creating parent
// directories.
func (r *JSONReporter) WriteFile(path string, run *RunReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	data, err := r.GenerateReport(run)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
