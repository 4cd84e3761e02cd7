package tui

import (
	"github.com/charmbracelet/lipgloss"

	"treeside/internal/config"
)

// Styles holds the lipgloss styles derived from the configured theme
type Styles struct {
	Directory lipgloss.Style
	File      lipgloss.Style
	Cursor    lipgloss.Style
	Dimmed    lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
}

// NewStyles builds the style set from the theme colors in the config
func NewStyles(cfg *config.Config) Styles {
	return Styles{
		Directory: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Directory)).
			Bold(true),
		File: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.File)),
		Cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.CursorFg)).
			Background(lipgloss.Color(cfg.Theme.Cursor)).
			Bold(true),
		Dimmed: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Dimmed)),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Status)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Error)),
	}
}
