package vitepress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/vitedoc/internal/logfields"
	"git.home.luguber.info/inful/vitedoc/internal/metrics"
)

// Stage is a discrete unit of work in a render run.
type Stage func(ctx context.Context, rs *RunState) error

// StageName is a strongly-typed identifier for a render stage.
type StageName string

// Canonical stage names.
const (
	StagePrepareOutput StageName = "prepare_output"
	StageGroupNodes    StageName = "group_nodes"
	StageRenderGroups  StageName = "render_groups"
	StageWriteIndex    StageName = "write_index"
	StageWriteSidebar  StageName = "write_sidebar"
	StagePruneStale    StageName = "prune_stale"
)

// StageErrorKind classifies the outcome of a stage.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Run must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}

func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// Pipeline is a fluent builder for ordered stage definitions.
type Pipeline struct{ Defs []StageDef }

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline { return &Pipeline{Defs: make([]StageDef, 0, 6)} }

// Add appends a stage unconditionally.
func (p *Pipeline) Add(name StageName, fn Stage) *Pipeline {
	p.Defs = append(p.Defs, StageDef{Name: name, Fn: fn})
	return p
}

// AddIf appends a stage only if cond is true.
func (p *Pipeline) AddIf(cond bool, name StageName, fn Stage) *Pipeline {
	if cond {
		p.Add(name, fn)
	}
	return p
}

// Build returns a copy of the stage definitions.
func (p *Pipeline) Build() []StageDef {
	out := make([]StageDef, len(p.Defs))
	copy(out, p.Defs)
	return out
}

// Names returns the stage names in execution order.
func (p *Pipeline) Names() []StageName {
	out := make([]StageName, len(p.Defs))
	for i, d := range p.Defs {
		out[i] = d.Name
	}
	return out
}

// runStages executes stages in order, recording timing and stopping on the
// first fatal or canceled stage. Warnings are recorded and the run continues.
func runStages(ctx context.Context, rs *RunState, stages []StageDef) error {
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			se := newCanceledStageError(st.Name, err)
			rs.record(st.Name, se)
			return se
		}

		t0 := time.Now()
		err := st.Fn(ctx, rs)
		dur := time.Since(t0)
		rs.Report.StageDurations[st.Name] = dur
		rs.recorder.ObserveStageDuration(string(st.Name), dur)
		rs.logger.Debug("Stage finished",
			logfields.Stage(string(st.Name)),
			logfields.DurationMS(float64(dur.Microseconds())/1000))

		if err == nil {
			rs.record(st.Name, nil)
			continue
		}

		var se *StageError
		if !errors.As(err, &se) {
			se = newFatalStageError(st.Name, err)
		}
		rs.record(st.Name, se)
		if se.Kind == StageErrorWarning {
			rs.logger.Warn("Stage completed with warnings",
				logfields.Stage(string(st.Name)), logfields.Error(se.Err))
			continue
		}
		return se
	}
	return nil
}

// record updates report counters and metrics for one stage outcome.
func (rs *RunState) record(stage StageName, se *StageError) {
	sc := rs.Report.StageCounts[stage]
	result := metrics.ResultSuccess
	switch {
	case se == nil:
		sc.Success++
	case se.Kind == StageErrorWarning:
		sc.Warning++
		result = metrics.ResultWarning
		rs.Report.Warnings = append(rs.Report.Warnings, se)
	case se.Kind == StageErrorCanceled:
		sc.Canceled++
		result = metrics.ResultCanceled
		rs.Report.Errors = append(rs.Report.Errors, se)
	default:
		sc.Fatal++
		result = metrics.ResultFatal
		rs.Report.Errors = append(rs.Report.Errors, se)
	}
	if se != nil {
		rs.Report.StageErrorKinds[stage] = se.Kind
		rs.Report.AddIssue(stage, se)
	}
	rs.Report.StageCounts[stage] = sc
	rs.recorder.IncStageResult(string(stage), result)
}

// loggerOrDefault returns l, or the default logger when l is nil.
func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
