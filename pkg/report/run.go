package report

import (
	"time"

	"digital.vasic.sweepbot/pkg/entry"
	"digital.vasic.sweepbot/pkg/metrics"
)

// RunReport is the record of one workflow run.
type RunReport struct {
	ID           string `json:"id"`
	CampaignKey  string `json:"campaign_key"`
	CampaignName string `json:"campaign_name,omitempty"`
	URL          string `json:"url,omitempty"`
	DryRun       bool   `json:"dry_run,omitempty"`

	// Outcome is done, graceful_stop, fatal_abort or cancelled.
	Outcome  string `json:"outcome"`
	Severity string `json:"severity,omitempty"`
	Message  string `json:"message,omitempty"`

	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`

	Total    int            `json:"total"`
	Progress int            `json:"progress"`
	Results  []entry.Result `json:"results"`

	Submitted   int `json:"submitted"`
	Accepted    int `json:"accepted"`
	Skipped     int `json:"skipped"`
	Errors      int `json:"errors"`
	WorthGained int `json:"worth_gained"`

	Submissions []metrics.Counter `json:"submissions,omitempty"`
	Skips       []metrics.Counter `json:"skips,omitempty"`
}

// NewRunReport starts a report.
func NewRunReport(id, campaignKey string, total int) *RunReport {
	return &RunReport{
		ID:          id,
		CampaignKey: campaignKey,
		Total:       total,
		StartTime:   time.Now(),
		Results:     make([]entry.Result, 0, total),
	}
}

// Add appends an entry result and updates the counters.
func (r *RunReport) Add(res entry.Result) {
	r.Results = append(r.Results, res)
	switch {
	case res.Submitted():
		r.Submitted++
		if res.Status == entry.StatusAccepted {
			r.Accepted++
			r.WorthGained += res.Worth
		}
	case res.Status == entry.StatusError:
		r.Errors++
	default:
		r.Skipped++
	}
}

// Finish stamps the outcome and end time.
func (r *RunReport) Finish(outcome string, end time.Time) {
	r.Outcome = outcome
	r.EndTime = end
	r.Duration = end.Sub(r.StartTime)
}

// Succeeded reports whether the run ended without a fatal abort
// or cancellation.
func (r *RunReport) Succeeded() bool {
	return r.Outcome == "done" || r.Outcome == "graceful_stop"
}
