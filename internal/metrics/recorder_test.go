package metrics

import (
	"testing"
	"time"
)

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("render_groups", time.Second)
	r.IncRunOutcome("success")
	r.AddDocuments(DocumentWritten, 3)
}

func TestFanoutForwardsToAll(t *testing.T) {
	a, b := NewCountingRecorder(), NewCountingRecorder()
	var r Recorder = Fanout{a, b, NoopRecorder{}}

	r.ObserveStageDuration("group_nodes", time.Millisecond)
	r.IncStageResult("prune_stale", ResultWarning)
	r.IncRunOutcome("warning")
	r.AddDocuments(DocumentSkipped, 2)
	r.AddDocuments(DocumentSkipped, 1)
	r.SetSymbols(7)
	r.ObserveRunDuration(time.Second)

	for _, c := range []*CountingRecorder{a, b} {
		if c.StageDurations["group_nodes"] != 1 {
			t.Errorf("stage durations = %v", c.StageDurations)
		}
		if c.StageResults["prune_stale"][ResultWarning] != 1 {
			t.Errorf("stage results = %v", c.StageResults)
		}
		if c.RunOutcomes["warning"] != 1 || c.RunDurations != 1 {
			t.Errorf("run outcomes = %v durations = %d", c.RunOutcomes, c.RunDurations)
		}
		if c.Documents[DocumentSkipped] != 3 || c.Symbols != 7 {
			t.Errorf("documents = %v symbols = %d", c.Documents, c.Symbols)
		}
	}
}
