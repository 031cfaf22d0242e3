package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"digital.vasic.sweepbot/pkg/entry"
)

func sampleRun() *RunReport {
	r := NewRunReport("run-1", "abCD1", 5)
	r.StartTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	r.Add(entry.Result{EntryID: "1", Status: entry.StatusAccepted, Worth: 3})
	r.Add(entry.Result{EntryID: "2", Status: entry.StatusAlreadyEntered})
	r.Add(entry.Result{EntryID: "3", Status: entry.StatusDisabled})
	r.Add(entry.Result{EntryID: "4", Status: entry.StatusError})
	r.Add(entry.Result{EntryID: "5", Status: entry.StatusSubmitted})
	r.Finish("done", r.StartTime.Add(90*time.Second))
	return r
}

func TestRunReport_Add(t *testing.T) {
	r := sampleRun()

	assert.Len(t, r.Results, 5)
	assert.Equal(t, 3, r.Submitted)
	assert.Equal(t, 1, r.Accepted)
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, 1, r.Errors)
	assert.Equal(t, 3, r.WorthGained)
}

func TestRunReport_Finish(t *testing.T) {
	r := sampleRun()

	assert.Equal(t, "done", r.Outcome)
	assert.Equal(t, 90*time.Second, r.Duration)
	assert.Equal(t, r.StartTime.Add(90*time.Second), r.EndTime)
}

func TestRunReport_Succeeded(t *testing.T) {
	tests := []struct {
		outcome string
		want    bool
	}{
		{"done", true},
		{"graceful_stop", true},
		{"fatal_abort", false},
		{"cancelled", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.outcome, func(t *testing.T) {
			r := NewRunReport("r", "k", 0)
			r.Outcome = tt.outcome
			assert.Equal(t, tt.want, r.Succeeded())
		})
	}
}
