package tui

import (
	"fmt"
	"os"
	"os/exec"

	"treeside/internal/log"
)

// insideTmux reports whether the sidebar is running inside a tmux pane
func insideTmux() bool {
	return os.Getenv("TMUX") != ""
}

// setTmuxBuffer fills a tmux paste buffer with the given text
func setTmuxBuffer(text string) error {
	if !insideTmux() {
		return fmt.Errorf("not inside tmux")
	}
	return exec.Command("tmux", "set-buffer", text).Run()
}

// zoomPane toggles zoom on the current tmux pane. Outside tmux it does
// nothing.
func zoomPane() {
	if !insideTmux() {
		return
	}
	if err := exec.Command("tmux", "resize-pane", "-Z").Run(); err != nil {
		log.LogWithFields(log.F("error", err)).Debug("tmux zoom failed")
	}
}

// markerPath returns the per-pane marker file path, or "" outside tmux.
// The marker lets outer tooling detect a running sidebar in this pane.
func markerPath() string {
	pane := os.Getenv("TMUX_PANE")
	if pane == "" {
		return ""
	}
	return "/tmp/treeside-" + pane
}

// createMarker touches the pane marker file
func createMarker() {
	if m := markerPath(); m != "" {
		if f, err := os.Create(m); err == nil {
			f.Close()
		}
	}
}

// removeMarker deletes the pane marker file
func removeMarker() {
	if m := markerPath(); m != "" {
		os.Remove(m)
	}
}
