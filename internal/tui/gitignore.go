package tui

import (
	"bytes"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// checkIgnored pipes the given paths through git check-ignore and returns
// the subset git considers ignored. Any failure (no git, not a repository)
// yields nil, which simply means nothing gets dimmed.
func checkIgnored(dir string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}

	cmd := exec.Command("git", "check-ignore", "--stdin")
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(strings.Join(paths, "\n"))

	var out bytes.Buffer
	cmd.Stdout = &out
	// check-ignore exits 1 when no path matches; only the output matters
	_ = cmd.Run()

	var ignored []string
	for _, line := range strings.Split(out.String(), "\n") {
		if line != "" {
			ignored = append(ignored, line)
		}
	}
	return ignored
}

// checkIgnoredCmd runs the gitignore check off the event loop and delivers
// the result as a message
func checkIgnoredCmd(dir string, paths []string) tea.Cmd {
	if len(paths) == 0 {
		return nil
	}
	return func() tea.Msg {
		return ignoredMsg{Paths: checkIgnored(dir, paths)}
	}
}
