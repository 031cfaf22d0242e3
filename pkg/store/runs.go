package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"digital.vasic.sweepbot/pkg/report"
)

// RecordRun stores run. Recording the same run id again replaces
// the earlier row.
func (s *Store) RecordRun(ctx context.Context, run *report.RunReport) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO runs(run_id, campaign_key, campaign_name, outcome, severity, message, started_at, ended_at, duration_ms, total, submitted, accepted, worth_gained, report, dry_run)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(run_id) DO UPDATE SET
	outcome=excluded.outcome,
	severity=excluded.severity,
	message=excluded.message,
	ended_at=excluded.ended_at,
	duration_ms=excluded.duration_ms,
	submitted=excluded.submitted,
	accepted=excluded.accepted,
	worth_gained=excluded.worth_gained,
	report=excluded.report
`, run.ID, run.CampaignKey, run.CampaignName, run.Outcome, run.Severity, run.Message,
		ts(run.StartTime), ts(run.EndTime), run.Duration.Milliseconds(),
		run.Total, run.Submitted, run.Accepted, run.WorthGained, string(data), boolToInt(run.DryRun))
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.ID, err)
	}
	return nil
}

// RecentRuns returns the last limit runs, newest first. A limit
// of zero or less returns every run.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]report.HistoricalEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT run_id, campaign_key, outcome, ended_at, duration_ms, submitted, accepted, worth_gained
FROM runs
ORDER BY ended_at DESC, run_id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []report.HistoricalEntry
	for rows.Next() {
		var (
			e       report.HistoricalEntry
			endedAt string
			ms      int64
		)
		if err := rows.Scan(&e.RunID, &e.CampaignKey, &e.Outcome, &endedAt, &ms, &e.Submitted, &e.Accepted, &e.WorthGained); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if e.Timestamp, err = parseTS(endedAt); err != nil {
			return nil, fmt.Errorf("failed to parse run %s end time: %w", e.RunID, err)
		}
		e.Duration = (time.Duration(ms) * time.Millisecond).String()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}
	return out, nil
}

// LoadRun returns the full report of runID.
func (s *Store) LoadRun(ctx context.Context, runID string) (*report.RunReport, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT report FROM runs WHERE run_id = ?`, runID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}
	var run report.RunReport
	if err := json.Unmarshal([]byte(data), &run); err != nil {
		return nil, fmt.Errorf("failed to parse run %s: %w", runID, err)
	}
	return &run, nil
}

// CampaignWorth sums the worth gained on campaignKey across runs.
func (s *Store) CampaignWorth(ctx context.Context, campaignKey string) (int, error) {
	var total sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT SUM(worth_gained) FROM runs WHERE campaign_key = ?`, campaignKey).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum worth for %s: %w", campaignKey, err)
	}
	return int(total.Int64), nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
