// Package vitepress renders a documentation project into a VitePress API
// section: one Markdown document per module group, an index document and a
// sidebar file.
//
// A run is a fixed pipeline of stages:
//
//	prepare_output → group_nodes → render_groups → write_index → write_sidebar → [incremental] prune_stale
//
// Full mode wipes the output directory first. Incremental mode keeps it,
// skips every write whose content did not change (index and sidebar
// included) and prunes documents no longer produced. Pruning failures are
// warnings; every other I/O failure aborts the run.
package vitepress

import (
	"bytes"
	"context"
	"log/slog"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/vitedoc/internal/docmodel"
	"git.home.luguber.info/inful/vitedoc/internal/foundation/errors"
	"git.home.luguber.info/inful/vitedoc/internal/frontmatter"
	"git.home.luguber.info/inful/vitedoc/internal/logfields"
	"git.home.luguber.info/inful/vitedoc/internal/metrics"
	"git.home.luguber.info/inful/vitedoc/internal/pages"
	"git.home.luguber.info/inful/vitedoc/internal/sidebar"
	"git.home.luguber.info/inful/vitedoc/internal/slug"
	"git.home.luguber.info/inful/vitedoc/internal/storage"
)

// Renderer owns the output directory for the duration of a run. A Renderer
// must not run concurrently with itself against the same store.
type Renderer struct {
	opts     Options
	store    storage.DocumentStore
	recorder metrics.Recorder
	logger   *slog.Logger
	runID    string
}

// New creates a renderer writing through store.
func New(opts Options, store storage.DocumentStore, options ...Option) *Renderer {
	r := &Renderer{
		opts:     opts.WithDefaults(),
		store:    store,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, o := range options {
		o(r)
	}
	return r
}

// Options returns the effective options.
func (r *Renderer) Options() Options { return r.opts }

// RunState carries mutable state across the stages of one run.
type RunState struct {
	Project   *docmodel.Project
	Nodes     []*docmodel.Node
	Groups    []*Group
	Documents []*Document
	Output    *OutputFileSet
	Report    *Report

	links    linkTable
	opts     Options
	store    storage.DocumentStore
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Pipeline returns the stage pipeline for the configured mode.
func (r *Renderer) Pipeline() *Pipeline {
	return NewPipeline().
		Add(StagePrepareOutput, stagePrepareOutput).
		Add(StageGroupNodes, stageGroupNodes).
		Add(StageRenderGroups, stageRenderGroups).
		Add(StageWriteIndex, stageWriteIndex).
		Add(StageWriteSidebar, stageWriteSidebar).
		AddIf(r.opts.Incremental, StagePruneStale, stagePruneStale)
}

// Render runs the pipeline for project. A nil or empty project still
// produces the index and sidebar. The report is returned even on failure;
// the error is the fatal or canceled stage error.
func (r *Renderer) Render(ctx context.Context, project *docmodel.Project) (*Report, error) {
	runID := r.runID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := r.logger.With(logfields.RunID(runID), logfields.Mode(string(r.opts.Mode())))

	report := newReport(runID, r.opts.Mode(), r.store.Root())
	rs := &RunState{
		Project:  project,
		Nodes:    project.Symbols(),
		Output:   NewOutputFileSet(),
		Report:   report,
		opts:     r.opts,
		store:    r.store,
		recorder: r.recorder,
		logger:   logger,
	}
	report.Symbols = len(rs.Nodes)
	r.recorder.SetSymbols(len(rs.Nodes))

	if err := r.opts.Validate(); err != nil {
		se := newFatalStageError(StagePrepareOutput, err)
		rs.record(StagePrepareOutput, se)
		return r.finish(rs, se)
	}

	logger.Info("Render started", logfields.Path(r.store.Root()), logfields.Count(len(rs.Nodes)))
	err := runStages(ctx, rs, r.Pipeline().Build())
	return r.finish(rs, err)
}

func (r *Renderer) finish(rs *RunState, runErr error) (*Report, error) {
	report := rs.Report
	report.finish()

	r.recorder.ObserveRunDuration(report.End.Sub(report.Start))
	r.recorder.IncRunOutcome(string(report.Outcome))
	r.recorder.AddDocuments(metrics.DocumentWritten, len(report.Written))
	r.recorder.AddDocuments(metrics.DocumentSkipped, len(report.Skipped))
	r.recorder.AddDocuments(metrics.DocumentPruned, len(report.Pruned))
	r.recorder.AddDocuments(metrics.DocumentPruneFailed, len(report.PruneFailures))

	if r.opts.ReportPath != "" {
		if err := report.Persist(r.opts.ReportPath); err != nil {
			rs.logger.Warn("Failed to persist run report", logfields.Path(r.opts.ReportPath), logfields.Error(err))
		}
	}

	if runErr != nil {
		rs.logger.Error("Render failed", logfields.Error(runErr), slog.String("summary", report.Summary()))
		return report, runErr
	}
	rs.logger.Info("Render completed", slog.String("summary", report.Summary()))
	return report, nil
}

func stagePrepareOutput(ctx context.Context, rs *RunState) error {
	if rs.opts.Incremental {
		if err := rs.store.Ensure(ctx); err != nil {
			return fsError(StagePrepareOutput, "Failed to create output directory", rs.store.Root(), err)
		}
		return nil
	}
	if err := rs.store.Reset(ctx); err != nil {
		return fsError(StagePrepareOutput, "Failed to reset output directory", rs.store.Root(), err)
	}
	return nil
}

func stageGroupNodes(_ context.Context, rs *RunState) error {
	rs.Groups = GroupNodes(rs.Nodes)
	rs.Documents = Documents(rs.Groups)
	rs.links = newLinkTable(rs.opts.BaseURL, rs.Documents)
	rs.Report.Groups = len(rs.Groups)
	for _, d := range rs.Documents {
		if len(d.Groups) > 1 {
			rs.logger.Info("Module groups share a document",
				logfields.File(d.File), logfields.Count(len(d.Groups)))
		}
	}
	return nil
}

func stageRenderGroups(ctx context.Context, rs *RunState) error {
	contents, err := prepareDocuments(ctx, rs.Documents, rs.opts.Concurrency)
	if err != nil {
		if ctx.Err() != nil {
			return newCanceledStageError(StageRenderGroups, ctx.Err())
		}
		return newFatalStageError(StageRenderGroups, err)
	}

	for i, d := range rs.Documents {
		if err := ctx.Err(); err != nil {
			return newCanceledStageError(StageRenderGroups, err)
		}
		if err := rs.writeDocument(ctx, StageRenderGroups, d.File, []byte(contents[i]), rs.opts.Incremental); err != nil {
			return err
		}
	}
	return nil
}

// prepareDocuments renders document text, in parallel up to limit. The
// result is indexed like docs.
func prepareDocuments(ctx context.Context, docs []*Document, limit int) ([]string, error) {
	out := make([]string, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, d := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := pages.Module(d.Nodes(), pages.Meta{})
			if err != nil {
				return errors.RenderError("Failed to render document").
					WithCause(err).WithContext("file", d.File).Build()
			}
			out[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// writeDocument writes content under name, skipping unchanged content when
// skipUnchanged is set. Markdown documents are claimed for this run before
// the write.
func (rs *RunState) writeDocument(ctx context.Context, stage StageName, name string, data []byte, skipUnchanged bool) error {
	if strings.HasSuffix(name, slug.Extension) {
		rs.Output.Claim(name)
		if fp, err := frontmatter.Fingerprint(data); err == nil {
			rs.Report.Fingerprints[name] = fp
		}
	}

	if skipUnchanged {
		existing, err := rs.store.Read(ctx, name)
		switch {
		case err == nil && bytes.Equal(existing, data):
			rs.Report.Skipped = append(rs.Report.Skipped, name)
			rs.logger.Debug("Document unchanged", logfields.File(name))
			return nil
		case err != nil && !storage.IsNotFound(err):
			rs.logger.Debug("Could not read existing document", logfields.File(name), logfields.Error(err))
		}
	}

	if err := rs.store.Write(ctx, name, data); err != nil {
		if ctx.Err() != nil {
			return newCanceledStageError(stage, ctx.Err())
		}
		return fsError(stage, "Failed to write file "+rs.displayPath(name), rs.displayPath(name), err)
	}
	rs.Report.Written = append(rs.Report.Written, name)
	rs.logger.Debug("Document written", logfields.File(name))
	return nil
}

func stageWriteIndex(ctx context.Context, rs *RunState) error {
	groups := make([]pages.IndexGroup, 0, len(rs.Groups))
	for _, g := range rs.Groups {
		ig := pages.IndexGroup{Module: g.Name()}
		for _, n := range g.Nodes {
			ig.Entries = append(ig.Entries, pages.IndexEntry{
				Name: n.Name,
				Kind: n.Kind.String(),
				Link: rs.links.resolve(rs.opts.BaseURL)(n),
			})
		}
		groups = append(groups, ig)
	}
	text, err := pages.Index(groups, pages.Meta{Title: rs.opts.Title, Description: rs.opts.Description})
	if err != nil {
		return newFatalStageError(StageWriteIndex, errors.RenderError("Failed to render index").WithCause(err).Build())
	}
	return rs.writeDocument(ctx, StageWriteIndex, IndexFile, []byte(text), rs.opts.Incremental)
}

func stageWriteSidebar(ctx context.Context, rs *RunState) error {
	tree := sidebar.Generate(rs.Nodes, sidebar.Options{
		BaseURL:   rs.opts.BaseURL,
		Link:      rs.links.resolve(rs.opts.BaseURL),
		Collapsed: rs.opts.SidebarCollapsed,
	})
	data, err := sidebar.Marshal(tree)
	if err != nil {
		return newFatalStageError(StageWriteSidebar, errors.RenderError("Failed to encode sidebar").WithCause(err).Build())
	}
	if err := rs.writeDocument(ctx, StageWriteSidebar, rs.opts.SidebarPath, data, rs.opts.Incremental); err != nil {
		return err
	}
	rs.logger.Debug("Sidebar generated", logfields.Path(rs.displayPath(rs.opts.SidebarPath)), logfields.Count(sidebar.Count(tree)))
	return nil
}

func stagePruneStale(ctx context.Context, rs *RunState) error {
	existing, err := rs.store.List(ctx)
	if err != nil {
		rs.logger.Warn("Failed to list output directory for pruning", logfields.Path(rs.store.Root()), logfields.Error(err))
		return newWarnStageError(StagePruneStale, errors.FileSystemError("Failed to list output directory").
			WithCause(err).WithContext("path", rs.store.Root()).Warning().Build())
	}

	for _, name := range existing {
		if !rs.isStale(name) {
			continue
		}
		if err := rs.store.Remove(ctx, name); err != nil {
			if storage.IsNotFound(err) {
				continue
			}
			rs.logger.Warn("Failed to delete stale document", logfields.File(name), logfields.Error(err))
			rs.Report.PruneFailures = append(rs.Report.PruneFailures, PruneFailure{File: name, Error: err.Error()})
			continue
		}
		rs.Report.Pruned = append(rs.Report.Pruned, name)
		rs.logger.Info("Deleted stale document", logfields.File(name))
	}

	if n := len(rs.Report.PruneFailures); n > 0 {
		first := rs.Report.PruneFailures[0]
		return newWarnStageError(StagePruneStale, errors.FileSystemError("Failed to delete stale documents").
			WithContext("path", rs.displayPath(first.File)).
			WithContext("failures", n).
			Warning().Build())
	}
	return nil
}

// isStale reports whether a listed document is no longer produced.
func (rs *RunState) isStale(name string) bool {
	if !strings.HasSuffix(name, ".md") || name == IndexFile || rs.Output.Has(name) {
		return false
	}
	for _, pattern := range rs.opts.PruneExclude {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return false
		}
	}
	return true
}

func (rs *RunState) displayPath(name string) string {
	return path.Join(strings.ReplaceAll(rs.store.Root(), "\\", "/"), name)
}

func fsError(stage StageName, msg, p string, cause error) *StageError {
	return newFatalStageError(stage, errors.FileSystemError(msg).
		WithCause(cause).WithContext("path", p).WithContext("stage", string(stage)).Build())
}
