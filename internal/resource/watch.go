package resource

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pact-ai/resdash/internal/logging"
)

// DefaultReloadDelay is the quiet period after the last write event before a
// changed snapshot file is reloaded.
const DefaultReloadDelay = 100 * time.Millisecond

// ReloadFunc receives each reload attempt. On error the caller should keep
// its previous snapshot.
type ReloadFunc func(*Snapshot, error)

// Watcher reloads a snapshot file whenever it changes on disk.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	delay    time.Duration
	onReload ReloadFunc
	logger   *logging.Logger

	started  bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewWatcher creates a watcher for the snapshot at path. The parent directory
// is watched so that editors which replace the file are still noticed.
func NewWatcher(path string, onReload ReloadFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	return &Watcher{
		watcher:  fw,
		path:     path,
		delay:    DefaultReloadDelay,
		onReload: onReload,
		logger:   logging.NopLogger(),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetLogger replaces the watcher's logger. Must be called before Start.
func (w *Watcher) SetLogger(l *logging.Logger) {
	if l != nil {
		w.logger = l.WithComponent("watcher")
	}
}

// SetDelay overrides the reload debounce window. Must be called before Start.
func (w *Watcher) SetDelay(d time.Duration) {
	w.delay = d
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	w.started = true
	go w.watchLoop()
}

// Stop ends watching and waits for the loop to exit. Safe to call twice.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.watcher.Close()
	})
	if w.started {
		<-w.doneCh
	}
}

func (w *Watcher) watchLoop() {
	defer close(w.doneCh)

	target := filepath.Base(w.path)
	reloadTimer := time.NewTimer(0)
	<-reloadTimer.C // drain initial timer
	defer reloadTimer.Stop()

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			reloadTimer.Reset(w.delay)

		case <-reloadTimer.C:
			snap, err := LoadFile(w.path)
			if err != nil {
				w.logger.LogError("snapshot reload failed", err, "path", w.path)
			} else {
				w.logger.Info("snapshot reloaded", "path", w.path, "records", snap.Len(), "revision", snap.Revision)
			}
			if w.onReload != nil {
				w.onReload(snap, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}
