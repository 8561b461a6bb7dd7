package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reseeds a store whenever the seed file changes.
type Watcher struct {
	path     string
	store    Store
	logger   *slog.Logger
	onReload func()
}

// NewWatcher creates a watcher for the seed file at path. onReload runs after
// every successful reseed.
func NewWatcher(path string, store Store, logger *slog.Logger, onReload func()) *Watcher {
	if onReload == nil {
		onReload = func() {}
	}
	return &Watcher{path: path, store: store, logger: logger, onReload: onReload}
}

// Run blocks until ctx is cancelled. The parent directory is watched so editors
// that replace the file on save are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}
	target := filepath.Clean(w.path)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(reloadDebounce, func() {
				w.reload(ctx)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("seed watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	seed, err := LoadSeedFile(w.path)
	if err != nil {
		w.logger.Error("seed reload failed", "file", w.path, "error", err)
		return
	}
	if err := seed.Apply(ctx, w.store); err != nil {
		w.logger.Error("seed apply failed", "file", w.path, "error", err)
		return
	}
	w.logger.Info("catalog reseeded", "file", w.path)
	w.onReload()
}
