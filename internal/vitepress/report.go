package vitepress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/vitedoc/internal/foundation/errors"
)

// Mode selects how the output directory is reconciled.
type Mode string

const (
	ModeFull        Mode = "full"
	ModeIncremental Mode = "incremental"
)

// Outcome is the typed enumeration of final run states.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeWarning  Outcome = "warning"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// StageCount aggregates outcome counts for a stage.
type StageCount struct {
	Success  int `json:"success"`
	Warning  int `json:"warning"`
	Fatal    int `json:"fatal"`
	Canceled int `json:"canceled"`
}

// Issue is a machine-readable record of one stage warning or error.
type Issue struct {
	Stage    StageName      `json:"stage"`
	Kind     StageErrorKind `json:"kind"`
	Category string         `json:"category,omitempty"`
	Path     string         `json:"path,omitempty"`
	Message  string         `json:"message"`
}

// PruneFailure records a stale document that could not be deleted.
type PruneFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// Report captures what a render run did.
type Report struct {
	SchemaVersion   int                          `json:"schema_version"`
	RunID           string                       `json:"run_id"`
	Mode            Mode                         `json:"mode"`
	OutputDir       string                       `json:"output_dir"`
	Start           time.Time                    `json:"start"`
	End             time.Time                    `json:"end"`
	Symbols         int                          `json:"symbols"`
	Groups          int                          `json:"groups"`
	StageDurations  map[StageName]time.Duration  `json:"stage_durations"`
	StageErrorKinds map[StageName]StageErrorKind `json:"stage_error_kinds,omitempty"`
	StageCounts     map[StageName]StageCount     `json:"stage_counts"`
	Written         []string                     `json:"written"`
	Skipped         []string                     `json:"skipped"`
	Pruned          []string                     `json:"pruned"`
	PruneFailures   []PruneFailure               `json:"prune_failures,omitempty"`
	Fingerprints    map[string]string            `json:"fingerprints"`
	Issues          []Issue                      `json:"issues,omitempty"`
	Outcome         Outcome                      `json:"outcome"`

	// Errors holds fatal or cancellation errors (at most one today).
	Errors []error `json:"-"`
	// Warnings holds non-fatal stage errors.
	Warnings []error `json:"-"`
}

func newReport(runID string, mode Mode, outputDir string) *Report {
	return &Report{
		SchemaVersion:   1,
		RunID:           runID,
		Mode:            mode,
		OutputDir:       outputDir,
		Start:           time.Now(),
		StageDurations:  make(map[StageName]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
		StageCounts:     make(map[StageName]StageCount),
		Written:         []string{},
		Skipped:         []string{},
		Pruned:          []string{},
		Fingerprints:    make(map[string]string),
	}
}

// AddIssue appends a structured issue for a stage error.
func (r *Report) AddIssue(stage StageName, se *StageError) {
	issue := Issue{Stage: stage, Kind: se.Kind, Message: se.Err.Error()}
	if ce, ok := errors.AsClassified(se.Err); ok {
		issue.Category = string(ce.Category())
		issue.Message = ce.Message()
		if p, ok := ce.Context().GetString("path"); ok {
			issue.Path = p
		}
	}
	r.Issues = append(r.Issues, issue)
}

func (r *Report) finish() {
	r.End = time.Now()
	r.deriveOutcome()
}

// deriveOutcome sets Outcome based on recorded errors and warnings.
func (r *Report) deriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			if se, ok := e.(*StageError); ok && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// Succeeded reports whether the run produced its documents (warnings allowed).
func (r *Report) Succeeded() bool {
	return r.Outcome == OutcomeSuccess || r.Outcome == OutcomeWarning
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	dur := r.End.Sub(r.Start)
	return fmt.Sprintf("mode=%s symbols=%d groups=%d written=%d skipped=%d pruned=%d warnings=%d duration=%s outcome=%s",
		r.Mode, r.Symbols, r.Groups, len(r.Written), len(r.Skipped), len(r.Pruned), len(r.Warnings),
		dur.Truncate(time.Millisecond), r.Outcome)
}

// Persist writes the report as indented JSON to path, replacing it atomically.
func (r *Report) Persist(path string) error {
	if r.End.IsZero() {
		r.finish()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure report directory: %w", err)
	}
	jb, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	tmp := path + ".tmp"
	// #nosec G306 - report is not sensitive
	if err := os.WriteFile(tmp, append(jb, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp report json: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("atomic rename report json: %w", err)
	}
	return nil
}
