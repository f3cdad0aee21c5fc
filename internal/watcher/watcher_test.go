package watcher

import (
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "tasks.db")

	w, err := New(db, func() {})
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	tests := map[string]struct {
		event fsnotify.Event
		want  bool
	}{
		"database write": {fsnotify.Event{Name: db, Op: fsnotify.Write}, true},
		"wal sidecar":    {fsnotify.Event{Name: db + "-wal", Op: fsnotify.Create}, true},
		"shm sidecar":    {fsnotify.Event{Name: db + "-shm", Op: fsnotify.Remove}, true},
		"other file":     {fsnotify.Event{Name: filepath.Join(dir, "notes.txt"), Op: fsnotify.Write}, false},
		"chmod only":     {fsnotify.Event{Name: db, Op: fsnotify.Chmod}, false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, w.relevant(tc.event))
		})
	}
}

func TestNewResolvesRelativePath(t *testing.T) {
	t.Chdir(t.TempDir())

	w, err := New("tasks.db", func() {})
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	// Events carry absolute names; a watcher built from a relative path
	// must still match them.
	abs, err := filepath.Abs("tasks.db")
	require.NoError(t, err)
	assert.True(t, w.relevant(fsnotify.Event{Name: abs, Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: abs + "-wal", Op: fsnotify.Write}))
}
