package metrics

import (
	"sync"
	"time"
)

// CountingRecorder keeps plain in-memory counts for tests and for callers
// that inspect a run programmatically.
type CountingRecorder struct {
	mu             sync.Mutex
	StageDurations map[string]int
	StageResults   map[string]map[ResultLabel]int
	RunDurations   int
	RunOutcomes    map[string]int
	Documents      map[DocumentAction]int
	Symbols        int
}

// NewCountingRecorder returns an empty CountingRecorder.
func NewCountingRecorder() *CountingRecorder {
	return &CountingRecorder{
		StageDurations: map[string]int{},
		StageResults:   map[string]map[ResultLabel]int{},
		RunOutcomes:    map[string]int{},
		Documents:      map[DocumentAction]int{},
	}
}

func (c *CountingRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.StageDurations[stage]++
}

func (c *CountingRecorder) ObserveRunDuration(time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.RunDurations++
}

func (c *CountingRecorder) IncStageResult(stage string, result ResultLabel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.StageResults[stage]
	if !ok {
		m = map[ResultLabel]int{}
		c.StageResults[stage] = m
	}
	m[result]++
}

func (c *CountingRecorder) IncRunOutcome(outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.RunOutcomes[outcome]++
}

func (c *CountingRecorder) AddDocuments(action DocumentAction, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Documents[action] += n
}

func (c *CountingRecorder) SetSymbols(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Symbols = n
}

// Fanout forwards every observation to all recorders.
type Fanout []Recorder

func (f Fanout) ObserveStageDuration(stage string, d time.Duration) {
	for _, r := range f {
		r.ObserveStageDuration(stage, d)
	}
}

func (f Fanout) ObserveRunDuration(d time.Duration) {
	for _, r := range f {
		r.ObserveRunDuration(d)
	}
}

func (f Fanout) IncStageResult(stage string, result ResultLabel) {
	for _, r := range f {
		r.IncStageResult(stage, result)
	}
}

func (f Fanout) IncRunOutcome(outcome string) {
	for _, r := range f {
		r.IncRunOutcome(outcome)
	}
}

func (f Fanout) AddDocuments(action DocumentAction, n int) {
	for _, r := range f {
		r.AddDocuments(action, n)
	}
}

func (f Fanout) SetSymbols(n int) {
	for _, r := range f {
		r.SetSymbols(n)
	}
}
