package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// DocumentAction classifies what happened to one output document.
type DocumentAction string

const (
	DocumentWritten     DocumentAction = "written"
	DocumentSkipped     DocumentAction = "skipped"
	DocumentPruned      DocumentAction = "pruned"
	DocumentPruneFailed DocumentAction = "prune_failed"
)

// Recorder defines observability hooks for render runs and their stages.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncRunOutcome(outcome string) // outcome: success|warning|failed|canceled
	AddDocuments(action DocumentAction, n int)
	SetSymbols(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncRunOutcome(string)                       {}
func (NoopRecorder) AddDocuments(DocumentAction, int)           {}
func (NoopRecorder) SetSymbols(int)                             {}
