package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryMetrics_RecordSubmission(t *testing.T) {
	m := NewMemoryMetrics()
	m.RecordSubmission("TwitterFollow", "success", 2*time.Second)
	m.RecordSubmission("TwitterFollow", "success", 3*time.Second)
	m.RecordSubmission("YoutubeEnter", "already_entered", time.Second)

	assert.Equal(t, 2, m.SubmissionCount("TwitterFollow", "success"))
	assert.Equal(t, 1, m.SubmissionCount("YoutubeEnter", "already_entered"))
	assert.Equal(t, 0, m.SubmissionCount("Loyalty", "success"))
}

func TestMemoryMetrics_Skips(t *testing.T) {
	m := NewMemoryMetrics()
	m.RecordSkip("TwitchFollow", "disabled")
	m.RecordSkip("Unknown", "unclassified")
	m.RecordSkip("TwitchFollow", "disabled")

	assert.Equal(t, 2, m.SkipCount("disabled"))
	subs, skips := m.Summary()
	assert.Empty(t, subs)
	assert.Equal(t, []Counter{
		{Name: "disabled", Count: 2},
		{Name: "unclassified", Count: 1},
	}, skips)
}

func TestMemoryMetrics_RunTotalAndProgress(t *testing.T) {
	m := NewMemoryMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrementRunTotal()
		}()
	}
	wg.Wait()
	m.SetProgress(66)

	assert.Equal(t, 10, m.RunTotal())
	assert.Equal(t, 66, m.Progress())
}

func TestNoopMetrics(t *testing.T) {
	var m RunMetrics = NoopMetrics{}
	m.RecordSubmission("k", "success", time.Second)
	m.RecordSkip("k", "disabled")
	m.IncrementRunTotal()
	m.SetProgress(0)
}
