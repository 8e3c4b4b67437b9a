package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Mulraeng/Vim-doc-editor/internal/watcher"
)

func startWatcher(t *testing.T, path string) <-chan watcher.Change {
	t.Helper()
	w, err := watcher.New(watcher.Config{Path: path, Debounce: 50 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	changes, err := w.Start()
	require.NoError(t, err)
	return changes
}

func expectChange(t *testing.T, changes <-chan watcher.Change) watcher.Change {
	t.Helper()
	select {
	case c := <-changes:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change notification")
	}
	return watcher.Change{}
}

func expectQuiet(t *testing.T, changes <-chan watcher.Change) {
	t.Helper()
	select {
	case c := <-changes:
		t.Fatalf("unexpected notification %+v", c)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("v0"), 0o600))
	changes := startWatcher(t, path)

	for i := range 5 {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("v%d", i+1)), 0o600))
		time.Sleep(10 * time.Millisecond)
	}

	c := expectChange(t, changes)
	require.False(t, c.Removed)
	require.Equal(t, filepath.Base(path), filepath.Base(c.Path))
	expectQuiet(t, changes)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	changes := startWatcher(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("y"), 0o600))
	expectQuiet(t, changes)
}

func TestWatcher_ReportsRemoval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	changes := startWatcher(t, path)

	require.NoError(t, os.Remove(path))
	require.True(t, expectChange(t, changes).Removed)
}

func TestWatcher_RenameOverIsAWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	changes := startWatcher(t, path)

	tmp := filepath.Join(dir, ".notes.txt.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("new"), 0o600))
	require.NoError(t, os.Rename(tmp, path))

	require.False(t, expectChange(t, changes).Removed)
}

func TestWatcher_StopEndsNotifications(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	w, err := watcher.New(watcher.DefaultConfig(path))
	require.NoError(t, err)
	changes, err := w.Start()
	require.NoError(t, err)
	require.NoError(t, w.Stop())

	require.NoError(t, os.WriteFile(path, []byte("y"), 0o600))
	expectQuiet(t, changes)
}
