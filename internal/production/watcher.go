package production

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/comalice/groupx/internal/primitives"
)

// Reload reports one settled change in a watched definition directory.
type Reload struct {
	Path       string
	Definition *primitives.Definition
	// Removed is set when the file was deleted or renamed away.
	Removed bool
	// Digest fingerprints the loaded multiplication table.
	Digest string
	// Err is set when the file could not be loaded.
	Err error
}

// WatcherStats counts watcher activity.
type WatcherStats struct {
	Reloads  int
	Removals int
	Errors   int
	// Unchanged counts writes whose table matched the last reload.
	Unchanged int
}

// DefinitionWatcher watches a directory of definition files and reports
// each changed file once it has been quiet for the debounce period.
type DefinitionWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	dir      string
	debounce time.Duration
	pending  map[string]time.Time
	removed  map[string]bool
	digests  map[string]string
	reloads  chan Reload
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	stats    WatcherStats
	logger   *zap.Logger
}

// NewDefinitionWatcher creates a watcher for dir. Call Start to begin.
func NewDefinitionWatcher(dir string, debounce time.Duration, logger *zap.Logger) (*DefinitionWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	return &DefinitionWatcher{
		watcher:  w,
		dir:      dir,
		debounce: debounce,
		pending:  make(map[string]time.Time),
		removed:  make(map[string]bool),
		digests:  make(map[string]string),
		reloads:  make(chan Reload, 16),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		logger:   logger,
	}, nil
}

// Reloads returns the channel changes are reported on. It is closed when
// the watcher stops.
func (dw *DefinitionWatcher) Reloads() <-chan Reload { return dw.reloads }

// Start begins watching. It does not block.
func (dw *DefinitionWatcher) Start(ctx context.Context) error {
	dw.mu.Lock()
	if dw.running {
		dw.mu.Unlock()
		return nil
	}
	dw.running = true
	dw.mu.Unlock()

	if err := dw.watcher.Add(dw.dir); err != nil {
		dw.mu.Lock()
		dw.running = false
		dw.mu.Unlock()
		return err
	}
	dw.logger.Info("watching definitions", zap.String("dir", dw.dir))
	go dw.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (dw *DefinitionWatcher) Stop() {
	dw.mu.Lock()
	if !dw.running {
		dw.mu.Unlock()
		return
	}
	dw.running = false
	dw.mu.Unlock()

	close(dw.stopCh)
	<-dw.doneCh
	if err := dw.watcher.Close(); err != nil {
		dw.logger.Error("closing watcher", zap.Error(err))
	}
}

// Close releases the underlying watcher of a watcher that was never
// started. Use Stop otherwise.
func (dw *DefinitionWatcher) Close() error {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.running {
		return nil
	}
	return dw.watcher.Close()
}

// Stats returns a copy of the activity counters.
func (dw *DefinitionWatcher) Stats() WatcherStats {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	return dw.stats
}

func (dw *DefinitionWatcher) run(ctx context.Context) {
	defer close(dw.doneCh)
	defer close(dw.reloads)

	tick := time.NewTicker(dw.debounce / 2)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-dw.stopCh:
			return
		case ev, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			dw.handle(ev)
		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			dw.logger.Warn("watcher error", zap.Error(err))
			dw.mu.Lock()
			dw.stats.Errors++
			dw.mu.Unlock()
		case <-tick.C:
			if !dw.flush(ctx) {
				return
			}
		}
	}
}

func (dw *DefinitionWatcher) handle(ev fsnotify.Event) {
	if _, ok := codecFor(ev.Name); !ok {
		return
	}
	var removed bool
	switch {
	case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		removed = true
	default:
		return
	}
	dw.logger.Debug("definition changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))

	dw.mu.Lock()
	dw.pending[ev.Name] = time.Now()
	dw.removed[ev.Name] = removed
	dw.mu.Unlock()
}

// flush reports every path that has been quiet for the debounce period.
// It returns false when the watcher should stop.
func (dw *DefinitionWatcher) flush(ctx context.Context) bool {
	now := time.Now()
	var settled []Reload
	dw.mu.Lock()
	for path, at := range dw.pending {
		if now.Sub(at) < dw.debounce {
			continue
		}
		settled = append(settled, Reload{Path: filepath.Clean(path), Removed: dw.removed[path]})
		delete(dw.pending, path)
		delete(dw.removed, path)
	}
	dw.mu.Unlock()

	for _, r := range settled {
		if !r.Removed {
			r.Definition, r.Err = LoadFile(r.Path)
		}
		dw.mu.Lock()
		switch {
		case r.Err != nil:
			dw.stats.Errors++
		case r.Removed:
			dw.stats.Removals++
			delete(dw.digests, r.Path)
		default:
			r.Digest = primitives.Digest(r.Definition)
			if dw.digests[r.Path] == r.Digest {
				dw.stats.Unchanged++
				dw.mu.Unlock()
				dw.logger.Debug("definition unchanged", zap.String("path", r.Path))
				continue
			}
			dw.digests[r.Path] = r.Digest
			dw.stats.Reloads++
		}
		dw.mu.Unlock()
		if r.Err != nil {
			dw.logger.Warn("definition reload failed", zap.String("path", r.Path), zap.Error(r.Err))
		}

		select {
		case dw.reloads <- r:
		case <-ctx.Done():
			return false
		case <-dw.stopCh:
			return false
		}
	}
	return true
}
