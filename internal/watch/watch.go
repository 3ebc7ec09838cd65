// Package watch drives the --watch continuous sync mode: an fsnotify
// watcher over the local resource staging directory plus a periodic
// ticker, both triggering a caller-supplied sync function.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Trigger runs one sync cycle. Called from the watch loop on local file
// events and on every tick of the poll interval.
type Trigger func(ctx context.Context, reason string) error

// Watcher drives Trigger on local filesystem change and on a poll interval.
type Watcher struct {
	dir          string
	pollInterval time.Duration
	logger       *slog.Logger
}

// New builds a Watcher over dir, ticking trigger at least every
// pollInterval even absent local changes (catches remote-only changes).
func New(dir string, pollInterval time.Duration, logger *slog.Logger) *Watcher {
	return &Watcher{dir: dir, pollInterval: pollInterval, logger: logger}
}

// Run blocks until ctx is canceled, calling trigger on startup, on every
// filesystem event under dir, and on every poll interval tick. fsnotify
// setup failures (e.g. dir not yet created) are logged and degrade to
// poll-only operation rather than aborting the watch.
func (w *Watcher) Run(ctx context.Context, trigger Trigger) error {
	if err := trigger(ctx, "startup"); err != nil {
		w.logger.Error("watch: startup sync failed", "error", err)
	}

	fsEvents, fsErrors, closeWatcher := w.startFsWatcher()
	defer closeWatcher()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}
	debounceArmed := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsEvents:
			if !ok {
				fsEvents = nil
				continue
			}

			w.logger.Debug("watch: filesystem event", "path", ev.Name, "op", ev.Op.String())

			if !debounceArmed {
				debounce.Reset(500 * time.Millisecond)
				debounceArmed = true
			}

		case err, ok := <-fsErrors:
			if !ok {
				fsErrors = nil
				continue
			}

			w.logger.Warn("watch: filesystem watcher error", "error", err)

		case <-debounce.C:
			debounceArmed = false

			if err := trigger(ctx, "local change"); err != nil {
				w.logger.Error("watch: sync after local change failed", "error", err)
			}

		case <-ticker.C:
			if err := trigger(ctx, "poll interval"); err != nil {
				w.logger.Error("watch: periodic sync failed", "error", err)
			}
		}
	}
}

// startFsWatcher creates an fsnotify watcher rooted at w.dir, creating the
// directory if absent. On any setup failure it logs a warning and returns
// nil channels — Run continues on poll-interval alone.
func (w *Watcher) startFsWatcher() (<-chan fsnotify.Event, <-chan error, func()) {
	noop := func() {}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		w.logger.Warn("watch: cannot create resource directory, falling back to poll-only", "dir", w.dir, "error", err)
		return nil, nil, noop
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Warn("watch: cannot create filesystem watcher, falling back to poll-only", "error", err)
		return nil, nil, noop
	}

	if err := addWatchesRecursive(watcher, w.dir); err != nil {
		w.logger.Warn("watch: cannot add watches, falling back to poll-only", "error", err)
		watcher.Close()

		return nil, nil, noop
	}

	return watcher.Events, watcher.Errors, func() { watcher.Close() }
}

// addWatchesRecursive adds a watch on root and every subdirectory beneath
// it, so new attachment subdirectories are also observed.
func addWatchesRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if !d.IsDir() {
			return nil
		}

		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch: adding watch on %s: %w", path, err)
		}

		return nil
	})
}
