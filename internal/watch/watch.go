// Package watch re-runs a render whenever its input files change.
//
// Events are debounced and rebuilds never overlap: a change that arrives
// while a rebuild runs schedules exactly one follow-up rebuild.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/vitedoc/internal/logfields"
)

// DefaultDebounce is the quiet period before a rebuild starts.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc performs one rebuild. Errors are logged and do not stop watching.
type RebuildFunc func(ctx context.Context) error

// Watcher watches a fixed set of files.
type Watcher struct {
	files    map[string]bool
	dirs     []string
	debounce time.Duration
	rebuild  RebuildFunc
	logger   *slog.Logger
}

// Option customizes a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher for files. Parent directories are watched so that
// editors replacing files atomically are still noticed.
func New(files []string, rebuild RebuildFunc, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		files:    make(map[string]bool),
		debounce: DefaultDebounce,
		rebuild:  rebuild,
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(w)
	}
	seenDir := make(map[string]bool)
	for _, f := range files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", f, err)
		}
		w.files[abs] = true
		if dir := filepath.Dir(abs); !seenDir[dir] {
			seenDir[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	if len(w.files) == 0 {
		return nil, fmt.Errorf("watch: no files to watch")
	}
	return w, nil
}

// Run watches until ctx is done. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fw.Close() }()

	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch directory %s: %w", dir, err)
		}
	}
	w.logger.Info("Watching for changes", logfields.Count(len(w.files)))
	return w.serve(ctx, fw.Events, fw.Errors)
}

// serve dispatches events until ctx is done or either channel closes. It
// returns only after an in-flight rebuild has finished.
func (w *Watcher) serve(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d := newDebouncer(w.debounce)
	defer d.stop()
	worker := newWorker(w.rebuild, w.logger)
	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.loop(ctx, d.C)
	}()
	stop := func() error {
		cancel()
		<-done
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return stop()
		case ev, ok := <-events:
			if !ok {
				w.logger.Debug("Watcher event channel closed")
				return stop()
			}
			if w.relevant(ev) {
				w.logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
				d.trigger()
			}
		case err, ok := <-errs:
			if !ok {
				w.logger.Debug("Watcher error channel closed")
				return stop()
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}

// debouncer coalesces triggers into at most one pending request on C.
type debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	C     chan struct{}
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay, C: make(chan struct{}, 1)}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		select {
		case d.C <- struct{}{}:
		default:
		}
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}

// worker runs rebuilds one at a time.
type worker struct {
	rebuild RebuildFunc
	logger  *slog.Logger

	mu      sync.Mutex
	running bool
	pending bool
}

func newWorker(fn RebuildFunc, logger *slog.Logger) *worker {
	return &worker{rebuild: fn, logger: logger}
}

// loop consumes requests until ctx is done or requests is closed.
func (wk *worker) loop(ctx context.Context, requests <-chan struct{}) {
	results := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			wk.wait(results)
			return
		case _, ok := <-requests:
			if !ok {
				wk.wait(results)
				return
			}
			if !wk.start() {
				continue
			}
			go func() {
				wk.run(ctx)
				results <- struct{}{}
			}()
		case <-results:
			if wk.finish() {
				if wk.start() {
					go func() {
						wk.run(ctx)
						results <- struct{}{}
					}()
				}
			}
		}
	}
}

// start marks a rebuild as running; it returns false and records a pending
// request when one is already running.
func (wk *worker) start() bool {
	wk.mu.Lock()
	defer wk.mu.Unlock()
	if wk.running {
		wk.pending = true
		return false
	}
	wk.running = true
	return true
}

// finish clears the running flag and reports whether a rebuild is pending.
func (wk *worker) finish() bool {
	wk.mu.Lock()
	defer wk.mu.Unlock()
	wk.running = false
	p := wk.pending
	wk.pending = false
	return p
}

func (wk *worker) wait(results <-chan struct{}) {
	wk.mu.Lock()
	running := wk.running
	wk.mu.Unlock()
	if running {
		<-results
	}
}

func (wk *worker) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	wk.logger.Info("Change detected; rebuilding")
	if err := wk.rebuild(ctx); err != nil {
		wk.logger.Warn("Rebuild failed", logfields.Error(err))
		return
	}
	wk.logger.Info("Rebuild finished", logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
}
