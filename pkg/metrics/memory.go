package metrics

import (
	"sort"
	"sync"
	"time"
)

// MemoryMetrics implements RunMetrics with in-memory counters.
// The run report reads them back through Summary.
type MemoryMetrics struct {
	mu          sync.Mutex
	submissions map[string]int
	skips       map[string]int
	durations   map[string][]time.Duration
	runTotal    int
	progress    int
}

// NewMemoryMetrics creates a new MemoryMetrics instance.
func NewMemoryMetrics() *MemoryMetrics {
	return &MemoryMetrics{
		submissions: make(map[string]int),
		skips:       make(map[string]int),
		durations:   make(map[string][]time.Duration),
	}
}

func (m *MemoryMetrics) RecordSubmission(kind, outcome string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions[kind+":"+outcome]++
	m.durations[kind] = append(m.durations[kind], duration)
}

func (m *MemoryMetrics) RecordSkip(kind, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skips[reason]++
}

func (m *MemoryMetrics) IncrementRunTotal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runTotal++
}

func (m *MemoryMetrics) SetProgress(percent int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress = percent
}

// SubmissionCount returns the count for a kind+outcome pair.
func (m *MemoryMetrics) SubmissionCount(kind, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submissions[kind+":"+outcome]
}

// SkipCount returns how many entries were skipped for reason.
func (m *MemoryMetrics) SkipCount(reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.skips[reason]
}

// RunTotal returns the total number of runs.
func (m *MemoryMetrics) RunTotal() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runTotal
}

// Progress returns the last progress value.
func (m *MemoryMetrics) Progress() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.progress
}

// Counter is one named count.
type Counter struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summary returns submission and skip counters sorted by name.
func (m *MemoryMetrics) Summary() (submissions, skips []Counter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedCounters(m.submissions), sortedCounters(m.skips)
}

func sortedCounters(in map[string]int) []Counter {
	out := make([]Counter, 0, len(in))
	for k, v := range in {
		out = append(out, Counter{Name: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
