package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"treeside/internal/fstree"
)

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	visible := m.tree.Visible()
	h := m.viewHeight()

	end := m.offset + h
	if end > len(visible) {
		end = len(visible)
	}

	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(visible[i], i == m.tree.Cursor()))
		b.WriteString("\n")
	}
	for i := end - m.offset; i < h; i++ {
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	return b.String()
}

// renderRow draws a single tree entry with indentation, the expansion
// glyph, and the appropriate style
func (m *Model) renderRow(node *fstree.Node, isCursor bool) string {
	indent := strings.Repeat("  ", node.Level)

	glyph := "  "
	if node.IsDir {
		if node.Expanded {
			glyph = "▾ "
		} else {
			glyph = "▸ "
		}
	}

	name := node.Name
	if node.IsDir {
		name += "/"
	}

	line := indent + glyph + name
	line = runewidth.Truncate(line, m.width, "…")

	if isCursor {
		padded := line + strings.Repeat(" ", max(0, m.width-runewidth.StringWidth(line)))
		return m.styles.Cursor.Render(padded)
	}
	if node.Ignored {
		return m.styles.Dimmed.Render(line)
	}
	if node.IsDir {
		return m.styles.Directory.Render(line)
	}
	return m.styles.File.Render(line)
}

// renderStatus draws the bottom line: either a transient message or the
// selected path
func (m *Model) renderStatus() string {
	text := m.status
	style := m.styles.Status
	if m.statusError {
		style = m.styles.Error
	}
	if text == "" {
		text = m.tree.SelectedPath()
	}
	return style.Render(runewidth.Truncate(text, m.width, "…"))
}
