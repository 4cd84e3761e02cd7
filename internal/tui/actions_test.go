package tui

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treeside/internal/config"
)

func TestResolveViewerUsesConfiguredCommand(t *testing.T) {
	cfg := config.New()
	cfg.Viewer.Command = []string{"sh", "-c", "true"}

	assert.Equal(t, []string{"sh", "-c", "true"}, resolveViewer(cfg))
}

func TestResolveViewerFallsBackToPager(t *testing.T) {
	cfg := config.New()
	cfg.Viewer.Command = []string{"definitely-not-installed-viewer"}
	cfg.Viewer.Fallback = []string{"less"}

	assert.Equal(t, []string{"less"}, resolveViewer(cfg))
}

func TestResolveEditorEnvOverride(t *testing.T) {
	cfg := config.New()
	t.Setenv(cfg.Editor.EnvVar, "vim -u NONE")

	assert.Equal(t, []string{"vim", "-u", "NONE"}, resolveEditor(cfg))
}

func TestResolveEditorBlankEnvFallsThrough(t *testing.T) {
	cfg := config.New()
	t.Setenv(cfg.Editor.EnvVar, "   ")
	cfg.Editor.Fallbacks = []string{"definitely-not-installed-editor", "sh"}

	assert.Equal(t, []string{"sh"}, resolveEditor(cfg))
}

func TestResolveEditorFallbackOrder(t *testing.T) {
	cfg := config.New()
	t.Setenv(cfg.Editor.EnvVar, "")
	cfg.Editor.Fallbacks = []string{"definitely-not-installed-editor", "sh"}

	assert.Equal(t, []string{"sh"}, resolveEditor(cfg))
}

func TestResolveEditorLastResort(t *testing.T) {
	cfg := config.New()
	t.Setenv(cfg.Editor.EnvVar, "")
	cfg.Editor.Fallbacks = []string{"missing-one", "missing-two"}

	assert.Equal(t, []string{"missing-two"}, resolveEditor(cfg))
}

func TestCheckIgnoredOutsideRepository(t *testing.T) {
	dir := t.TempDir()
	assert.Nil(t, checkIgnored(dir, []string{filepath.Join(dir, "a.log")}))
}

func TestCheckIgnoredInRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		require.NoError(t, cmd.Run())
	}
	run("init", "-q")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*.log\n"), 0o644))

	ignored := checkIgnored(dir, []string{
		filepath.Join(dir, "build.log"),
		filepath.Join(dir, "main.go"),
	})

	require.Len(t, ignored, 1)
	assert.Contains(t, ignored[0], "build.log")
}
