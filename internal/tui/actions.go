package tui

import (
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"treeside/internal/config"
	"treeside/internal/errors"
	"treeside/internal/log"
)

// resolveViewer returns the argv for the file viewer: the configured
// command when its program is on PATH, otherwise the pager fallback.
func resolveViewer(cfg *config.Config) []string {
	if len(cfg.Viewer.Command) > 0 {
		if _, err := exec.LookPath(cfg.Viewer.Command[0]); err == nil {
			return cfg.Viewer.Command
		}
	}
	return cfg.Viewer.Fallback
}

// resolveEditor returns the argv for the editor: the environment override
// first, then the configured fallbacks in order of PATH availability. The
// last fallback is returned even when not found so the spawn error names it.
func resolveEditor(cfg *config.Config) []string {
	if custom := strings.Fields(os.Getenv(cfg.Editor.EnvVar)); len(custom) > 0 {
		return custom
	}
	for _, ed := range cfg.Editor.Fallbacks {
		if _, err := exec.LookPath(ed); err == nil {
			return []string{ed}
		}
	}
	return []string{cfg.Editor.Fallbacks[len(cfg.Editor.Fallbacks)-1]}
}

// spawn hands the terminal to an external program until it exits. The event
// loop is suspended for the duration; rendering resumes when the program
// returns.
func spawn(argv []string, path string) tea.Cmd {
	c := exec.Command(argv[0], append(append([]string(nil), argv[1:]...), path)...)
	program := argv[0]
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return spawnFinishedMsg{Program: program, Err: err}
	})
}

// copyText hands text to the system clipboard, falling back to a tmux
// buffer. The tmux buffer is also filled on success so the path can be
// pasted into a neighboring pane.
func copyText(text string) error {
	clipErr := clipboard.WriteAll(text)
	if clipErr != nil {
		log.LogWithFields(log.F("error", clipErr)).Debug("system clipboard unavailable")
	}

	tmuxErr := setTmuxBuffer(text)

	if clipErr != nil && tmuxErr != nil {
		return errors.NewClipboardError("no clipboard mechanism available", clipErr)
	}
	return nil
}
