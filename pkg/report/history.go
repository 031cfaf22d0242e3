package report

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// HistoricalEntry is one run in the JSON Lines history log.
type HistoricalEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	RunID       string    `json:"run_id"`
	CampaignKey string    `json:"campaign_key"`
	Outcome     string    `json:"outcome"`
	Duration    string    `json:"duration"`
	Submitted   int       `json:"submitted"`
	Accepted    int       `json:"accepted"`
	WorthGained int       `json:"worth_gained"`
	ReportPath  string    `json:"report_path,omitempty"`
}

// NewHistoricalEntry summarises run.
func NewHistoricalEntry(run *RunReport, reportPath string) HistoricalEntry {
	return HistoricalEntry{
		Timestamp:   run.EndTime,
		RunID:       run.ID,
		CampaignKey: run.CampaignKey,
		Outcome:     run.Outcome,
		Duration:    run.Duration.String(),
		Submitted:   run.Submitted,
		Accepted:    run.Accepted,
		WorthGained: run.WorthGained,
		ReportPath:  reportPath,
	}
}

// AppendToHistory adds run to the log at historyPath. Each entry
// is a single JSON line.
func AppendToHistory(
	historyPath string,
	run *RunReport,
	reportPath string,
) error {
	data, err := json.Marshal(NewHistoricalEntry(run, reportPath))
	if err != nil {
		return fmt.Errorf(
			"failed to marshal history entry: %w", err,
		)
	}

	file, err := os.OpenFile(
		historyPath,
		os.O_CREATE|os.O_APPEND|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to open history file: %w", err,
		)
	}
	defer func() { _ = file.Close() }()

	_, err = fmt.Fprintln(file, string(data))
	return err
}

// ReadHistory returns the last limit entries of the log, newest
// first. A missing log is empty; limit <= 0 returns everything.
func ReadHistory(historyPath string, limit int) ([]HistoricalEntry, error) {
	file, err := os.Open(historyPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var all []HistoricalEntry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var e HistoricalEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("failed to parse history entry: %w", err)
		}
		all = append(all, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	out := make([]HistoricalEntry, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, all[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
