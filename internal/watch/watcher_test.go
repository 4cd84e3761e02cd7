package watch_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gobwas/glob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treeside/internal/watch"
)

func newTestWatcher(t *testing.T, ignore ...string) *watch.Watcher {
	t.Helper()
	globs := make([]glob.Glob, 0, len(ignore))
	for _, pattern := range ignore {
		globs = append(globs, glob.MustCompile(pattern))
	}
	w, err := watch.New(50*time.Millisecond, globs)
	require.NoError(t, err)
	t.Cleanup(w.Stop)
	return w
}

func waitRefresh(t *testing.T, w *watch.Watcher) watch.Refresh {
	t.Helper()
	select {
	case r := <-w.Refreshes():
		return r
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for refresh")
		return watch.Refresh{}
	}
}

func TestRefreshOnCreate(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t)
	w.SetDirectories([]string{dir})
	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0o644))

	r := waitRefresh(t, w)
	assert.Contains(t, r.Dirs, dir)
}

func TestDebounceCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t)
	w.SetDirectories([]string{dir})
	require.NoError(t, w.Start())

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "f"+string(rune('a'+i))), []byte("x"), 0o644))
	}

	r := waitRefresh(t, w)
	// One batch, the directory listed once
	count := 0
	for _, d := range r.Dirs {
		if d == dir {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestRemoveReportsParent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doomed.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	w := newTestWatcher(t)
	w.SetDirectories([]string{dir})
	require.NoError(t, w.Start())

	require.NoError(t, os.Remove(target))

	r := waitRefresh(t, w)
	assert.Contains(t, r.Dirs, dir)
}

func TestIgnoredComponents(t *testing.T) {
	dir := t.TempDir()
	noisy := filepath.Join(dir, ".git")
	require.NoError(t, os.Mkdir(noisy, 0o755))

	w := newTestWatcher(t, ".git")
	w.SetDirectories([]string{dir, noisy})
	require.NoError(t, w.Start())

	// Noise first, then a real change; only the real one must arrive
	require.NoError(t, os.WriteFile(filepath.Join(noisy, "HEAD"), []byte("ref"), 0o644))
	time.Sleep(150 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "real.txt"), []byte("x"), 0o644))

	r := waitRefresh(t, w)
	assert.Contains(t, r.Dirs, dir)
	assert.NotContains(t, r.Dirs, noisy)
}

func TestSetDirectoriesUnregisters(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()

	w := newTestWatcher(t)
	w.SetDirectories([]string{a, b})
	assert.ElementsMatch(t, []string{a, b}, w.Directories())

	w.SetDirectories([]string{b})
	assert.Equal(t, []string{b}, w.Directories())
}

func TestStartStop(t *testing.T) {
	w := newTestWatcher(t)
	require.NoError(t, w.Start())
	assert.True(t, w.IsRunning())

	// A second start fails while running
	assert.Error(t, w.Start())

	w.Stop()
	assert.False(t, w.IsRunning())

	// Stop is idempotent
	w.Stop()
}

func TestStartAfterStopFails(t *testing.T) {
	w := newTestWatcher(t)
	require.NoError(t, w.Start())
	w.Stop()

	// Stop released the fsnotify resources; the watcher is terminal
	assert.Error(t, w.Start())
	assert.False(t, w.IsRunning())
}
