package tui

// clearStatusMsg blanks the status bar after its display period
type clearStatusMsg struct{}

// refreshMsg carries a debounced batch of changed directories from the
// filesystem watcher
type refreshMsg struct {
	Dirs []string
}

// ignoredMsg carries the subset of checked paths that git considers ignored
type ignoredMsg struct {
	Paths []string
}

// autosaveMsg triggers a periodic state flush
type autosaveMsg struct{}

// spawnFinishedMsg reports the result of a preview or editor handoff
type spawnFinishedMsg struct {
	Program string
	Err     error
}
