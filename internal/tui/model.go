// Package tui implements the sidebar's terminal interface: a bubbletea
// model over the filesystem tree, key dispatch, external program handoff,
// and the status line.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"treeside/internal/config"
	"treeside/internal/fstree"
	"treeside/internal/log"
	"treeside/internal/state"
	"treeside/internal/watch"
	"treeside/pkg/types"
)

// statusDisplayTime is how long a transient status message stays visible
const statusDisplayTime = 3 * time.Second

// Model is the bubbletea model for the sidebar
type Model struct {
	tree    *fstree.Tree
	cfg     *config.Config
	store   *state.Store
	watcher *watch.Watcher
	keys    types.KeyMap
	styles  Styles

	width  int
	height int
	offset int // first visible row, for scrolling

	status      string
	statusError bool
}

// New creates the sidebar model rooted at rootDir, restoring any persisted
// state for that root and starting the filesystem watcher.
func New(rootDir string, cfg *config.Config, store *state.Store) (*Model, error) {
	tree, err := fstree.New(rootDir, cfg.Tree.ShowHidden)
	if err != nil {
		return nil, err
	}

	m := &Model{
		tree:   tree,
		cfg:    cfg,
		store:  store,
		keys:   types.DefaultKeyMap(),
		styles: NewStyles(cfg),
		width:  80,
		height: 24,
	}

	if store != nil {
		rec, err := store.Load(tree.Root.Path)
		if err != nil {
			log.LogWithError(err).Warn("could not load saved state, starting fresh")
		}
		if rec != nil {
			tree.Restore(rec.Expanded, rec.Selected)
		}
	}

	if cfg.Watch.Enabled {
		w, err := watch.New(time.Duration(cfg.Watch.DebounceMs)*time.Millisecond, cfg.IgnoreGlobs())
		if err != nil {
			log.LogWithError(err).Warn("filesystem watching disabled")
		} else {
			m.watcher = w
			w.SetDirectories(tree.ExpandedDirs())
			if err := w.Start(); err != nil {
				log.LogWithError(err).Warn("filesystem watching disabled")
				m.watcher = nil
			}
		}
	}

	createMarker()

	return m, nil
}

// Tree exposes the underlying tree, primarily for tests
func (m *Model) Tree() *fstree.Tree {
	return m.tree
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.listenRefresh(), m.autosaveTick()}
	cmds = append(cmds, m.recheckExpanded()...)
	return tea.Batch(cmds...)
}

// recheckExpanded kicks off gitignore checks for the children of every
// expanded directory, including those re-expanded from persisted state
func (m *Model) recheckExpanded() []tea.Cmd {
	if !m.cfg.Tree.DimIgnored {
		return nil
	}
	var cmds []tea.Cmd
	for _, dir := range m.tree.ExpandedDirs() {
		if cmd := m.recheckIgnored(m.tree.Find(dir)); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// listenRefresh waits for the next debounced watcher batch
func (m *Model) listenRefresh() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	ch := m.watcher.Refreshes()
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return refreshMsg{Dirs: r.Dirs}
	}
}

// autosaveTick schedules the next periodic state flush
func (m *Model) autosaveTick() tea.Cmd {
	if m.cfg.Autosave.IntervalSeconds <= 0 {
		return nil
	}
	return tea.Tick(time.Duration(m.cfg.Autosave.IntervalSeconds)*time.Second, func(time.Time) tea.Msg {
		return autosaveMsg{}
	})
}

// recheckIgnored kicks off a gitignore check for a directory's children
func (m *Model) recheckIgnored(node *fstree.Node) tea.Cmd {
	if node == nil || !m.cfg.Tree.DimIgnored {
		return nil
	}
	paths := make([]string, 0, len(node.Children))
	for _, child := range node.Children {
		paths = append(paths, child.Path)
	}
	return checkIgnoredCmd(m.tree.Root.Path, paths)
}

// setStatus shows a transient status message and schedules its removal
func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.status = text
	m.statusError = isError
	return tea.Tick(statusDisplayTime, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// saveState flushes the browsing state; failures are logged, never fatal
func (m *Model) saveState() {
	if m.store == nil {
		return
	}
	rec := &state.Record{
		Expanded: m.tree.ExpandedPaths(),
		Selected: m.tree.SelectedPath(),
	}
	if err := m.store.Save(m.tree.Root.Path, rec); err != nil {
		log.LogWithError(err).Warn("could not save state")
	}
}

// shutdown flushes state and releases resources before the program exits
func (m *Model) shutdown() {
	m.saveState()
	removeMarker()
	if m.watcher != nil {
		m.watcher.Stop()
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case refreshMsg:
		return m.handleRefresh(msg)

	case ignoredMsg:
		for _, path := range msg.Paths {
			if node := m.tree.Find(path); node != nil {
				node.Ignored = true
			}
		}
		return m, nil

	case spawnFinishedMsg:
		if msg.Err != nil {
			log.LogWithFields(log.F("program", msg.Program), log.F("error", msg.Err)).Warn("external program failed")
			return m, m.setStatus(msg.Program+": "+msg.Err.Error(), true)
		}
		return m, nil

	case autosaveMsg:
		m.saveState()
		return m, m.autosaveTick()

	case clearStatusMsg:
		m.status = ""
		m.statusError = false
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.tree.Move(fstree.Up)
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Down):
		m.tree.Move(fstree.Down)
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.JumpPrev):
		m.tree.JumpSibling(fstree.Up)
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.JumpNext):
		m.tree.JumpSibling(fstree.Down)
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Toggle):
		node := m.tree.Selected()
		m.tree.Toggle()
		m.ensureCursorVisible()
		if m.watcher != nil {
			m.watcher.SetDirectories(m.tree.ExpandedDirs())
		}
		if node.IsDir && node.Expanded {
			return m, m.recheckIgnored(node)
		}

	case key.Matches(msg, m.keys.Preview):
		node := m.tree.Selected()
		if !node.IsDir {
			return m, spawn(resolveViewer(m.cfg), node.Path)
		}

	case key.Matches(msg, m.keys.Edit):
		node := m.tree.Selected()
		if !node.IsDir {
			return m, spawn(resolveEditor(m.cfg), node.Path)
		}

	case key.Matches(msg, m.keys.CopyRel):
		return m, m.copySelected(m.tree.SelectedPath())

	case key.Matches(msg, m.keys.CopyAbs):
		return m, m.copySelected(m.tree.Selected().Path)

	case key.Matches(msg, m.keys.Zoom):
		zoomPane()
	}

	return m, nil
}

// copySelected hands a path to the clipboard and reports the outcome
func (m *Model) copySelected(text string) tea.Cmd {
	if err := copyText(text); err != nil {
		log.LogWithError(err).Warn("copy failed")
		return m.setStatus("Copy failed: no clipboard available", true)
	}
	return m.setStatus("Copied: "+text, false)
}

func (m *Model) handleRefresh(msg refreshMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.listenRefresh()}
	for _, dir := range msg.Dirs {
		m.tree.Refresh(dir)
		if cmd := m.recheckIgnored(m.tree.Find(dir)); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if m.watcher != nil {
		m.watcher.SetDirectories(m.tree.ExpandedDirs())
	}
	m.ensureCursorVisible()
	return m, tea.Batch(cmds...)
}

// viewHeight is the number of tree rows that fit above the status line
func (m *Model) viewHeight() int {
	h := m.height - 1
	if h < 1 {
		h = 1
	}
	return h
}

// ensureCursorVisible adjusts the scroll offset so the cursor stays on
// screen
func (m *Model) ensureCursorVisible() {
	h := m.viewHeight()

	if m.tree.Cursor() < m.offset {
		m.offset = m.tree.Cursor()
	}
	if m.tree.Cursor() >= m.offset+h {
		m.offset = m.tree.Cursor() - h + 1
	}

	maxOffset := len(m.tree.Visible()) - h
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
