// Package watcher provides debounced change detection for the task database.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay is the time to wait after the last file event before
// triggering a callback. SQLite touches the database, WAL, and shm files
// in quick succession on a single write; this coalesces them into one
// notification.
const debounceDelay = 100 * time.Millisecond

// Watcher watches the database file for changes made by another process
// and invokes a callback with debouncing.
type Watcher struct {
	fsw      *fsnotify.Watcher
	dbPath   string
	mu       sync.Mutex
	timer    *time.Timer
	callback func()
}

// New creates a Watcher for the database at dbPath. It watches the
// containing directory since SQLite replaces the WAL and shm sidecar
// files rather than writing them in place. The path is resolved to an
// absolute one so events, which carry absolute names, match it.
func New(dbPath string, callback func()) (*Watcher, error) {
	dbPath, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(filepath.Dir(dbPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return &Watcher{
		fsw:      fsw,
		dbPath:   dbPath,
		callback: callback,
	}, nil
}

// Run starts the watch loop. It blocks until the context is canceled.
// Errors from the underlying watcher are passed to the optional errFn callback.
func (w *Watcher) Run(ctx context.Context, errFn func(error)) {
	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.debounce()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if errFn != nil {
				errFn(err)
			}
		}
	}
}

// relevant reports whether the event touches the database or one of its
// sidecar files.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return strings.HasPrefix(filepath.Clean(event.Name), w.dbPath)
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) debounce() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceDelay, w.callback)
}
