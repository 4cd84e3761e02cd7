package fstree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"treeside/internal/errors"
	"treeside/internal/log"
)

// Direction is the orientation of a cursor movement
type Direction int

// Movement directions
const (
	Up Direction = iota
	Down
)

// Node represents a node in the file tree
type Node struct {
	Name     string
	Path     string
	IsDir    bool
	Expanded bool
	Listed   bool // children have been populated at least once
	Ignored  bool // matched by git check-ignore, rendered dimmed
	Children []*Node
	Parent   *Node
	Level    int
}

// Tree holds the browsing state: the root node (always expanded), the lazy
// node hierarchy, and the cursor over the visible flattening. It is only
// ever touched from the event loop, so it needs no locking.
type Tree struct {
	Root       *Node
	cursor     int
	visible    []*Node
	showHidden bool
}

// New creates a tree rooted at rootDir. The root is validated eagerly
// because an invalid root is the one fatal error in the system.
func New(rootDir string, showHidden bool) (*Tree, error) {
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, errors.NewStartupError("invalid root path", rootDir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.NewStartupError("root path does not exist", abs, err)
	}
	if !info.IsDir() {
		return nil, errors.NewStartupError("root path is not a directory", abs, nil)
	}

	root := &Node{
		Name:     filepath.Base(abs),
		Path:     abs,
		IsDir:    true,
		Expanded: true,
		Level:    0,
	}

	t := &Tree{
		Root:       root,
		showHidden: showHidden,
	}

	t.list(root)
	t.rebuildVisible()

	return t, nil
}

// list populates a directory node's children. A listing failure leaves the
// node expanded with zero children, which is a valid, stable state.
func (t *Tree) list(node *Node) {
	node.Listed = true
	node.Children = nil

	entries, err := ListChildren(node.Path, t.showHidden)
	if err != nil {
		log.LogWithError(err).Warn("directory listing failed")
		return
	}

	for _, e := range entries {
		node.Children = append(node.Children, &Node{
			Name:   e.Name,
			Path:   filepath.Join(node.Path, e.Name),
			IsDir:  e.IsDir,
			Parent: node,
			Level:  node.Level + 1,
		})
	}
}

// rebuildVisible recomputes the visible flattening and keeps the cursor in
// bounds.
func (t *Tree) rebuildVisible() {
	t.visible = t.visible[:0]
	t.addVisible(t.Root)

	if t.cursor >= len(t.visible) {
		t.cursor = len(t.visible) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

func (t *Tree) addVisible(node *Node) {
	t.visible = append(t.visible, node)
	if node.Expanded {
		for _, child := range node.Children {
			t.addVisible(child)
		}
	}
}

// Visible returns the current visible flattening, root first
func (t *Tree) Visible() []*Node {
	return t.visible
}

// Cursor returns the index of the selected row in the visible flattening
func (t *Tree) Cursor() int {
	return t.cursor
}

// Selected returns the node under the cursor
func (t *Tree) Selected() *Node {
	if len(t.visible) == 0 {
		return t.Root
	}
	return t.visible[t.cursor]
}

// Toggle flips the expansion of the directory under the cursor. The root
// stays open, files are ignored, and a directory whose first listing fails
// ends up expanded with zero children.
func (t *Tree) Toggle() {
	node := t.Selected()
	if node == t.Root || !node.IsDir {
		return
	}

	node.Expanded = !node.Expanded
	if node.Expanded && !node.Listed {
		t.list(node)
	}

	t.rebuildVisible()
}

// Move advances the cursor one row up or down, clamped at the ends
func (t *Tree) Move(dir Direction) {
	switch dir {
	case Up:
		if t.cursor > 0 {
			t.cursor--
		}
	case Down:
		if t.cursor < len(t.visible)-1 {
			t.cursor++
		}
	}
}

// JumpSibling moves the cursor between directory siblings under the same
// parent. At either end, or when the parent has no directory children, the
// cursor moves to the parent instead. From a file it targets the nearest
// directory sibling before or after it. A cursor on the root does nothing.
func (t *Tree) JumpSibling(dir Direction) {
	node := t.Selected()
	if node.Parent == nil {
		return
	}

	siblings := node.Parent.Children
	var dirs []*Node
	for _, s := range siblings {
		if s.IsDir {
			dirs = append(dirs, s)
		}
	}

	if len(dirs) == 0 {
		t.moveTo(node.Parent)
		return
	}

	if node.IsDir {
		idx := -1
		for i, d := range dirs {
			if d == node {
				idx = i
				break
			}
		}
		switch {
		case dir == Up && idx > 0:
			t.moveTo(dirs[idx-1])
		case dir == Down && idx >= 0 && idx < len(dirs)-1:
			t.moveTo(dirs[idx+1])
		default:
			t.moveTo(node.Parent)
		}
		return
	}

	// On a file: the nearest directory sibling before or after it
	pos := -1
	for i, s := range siblings {
		if s == node {
			pos = i
			break
		}
	}
	var target *Node
	if dir == Up {
		for i := pos - 1; i >= 0; i-- {
			if siblings[i].IsDir {
				target = siblings[i]
				break
			}
		}
	} else {
		for i := pos + 1; i < len(siblings); i++ {
			if siblings[i].IsDir {
				target = siblings[i]
				break
			}
		}
	}
	if target != nil {
		t.moveTo(target)
	} else {
		t.moveTo(node.Parent)
	}
}

// moveTo places the cursor on the given node. Ancestors of a visible node
// are necessarily visible themselves.
func (t *Tree) moveTo(node *Node) {
	for i, row := range t.visible {
		if row == node {
			t.cursor = i
			return
		}
	}
}

// Find returns the loaded node with the given absolute path, or nil
func (t *Tree) Find(path string) *Node {
	return findNode(t.Root, path)
}

func findNode(node *Node, path string) *Node {
	if node.Path == path {
		return node
	}
	for _, child := range node.Children {
		if found := findNode(child, path); found != nil {
			return found
		}
	}
	return nil
}

// Refresh relists a directory whose contents changed on disk, preserving
// the expansion state of surviving subdirectories and keeping the selection
// on the same path where possible.
func (t *Tree) Refresh(path string) {
	node := t.Find(path)
	if node == nil || !node.IsDir || !node.Listed {
		return
	}

	selectedPath := t.Selected().Path

	old := make(map[string]*Node, len(node.Children))
	for _, child := range node.Children {
		old[child.Name] = child
	}

	t.list(node)

	for i, child := range node.Children {
		prev, ok := old[child.Name]
		if ok && prev.IsDir == child.IsDir {
			prev.Parent = node
			node.Children[i] = prev
		}
	}

	t.rebuildVisible()
	t.selectPath(selectedPath)
}

// selectPath places the cursor on the given path if visible, otherwise on
// its nearest visible ancestor.
func (t *Tree) selectPath(path string) {
	for path != "" {
		for i, row := range t.visible {
			if row.Path == path {
				t.cursor = i
				return
			}
		}
		parent := filepath.Dir(path)
		if parent == path {
			break
		}
		path = parent
	}
	t.cursor = 0
}

// ExpandedPaths returns the expanded directories as paths relative to the
// root, sorted shallow-first. The root itself is omitted since it is always
// expanded.
func (t *Tree) ExpandedPaths() []string {
	var paths []string
	var walk func(node *Node)
	walk = func(node *Node) {
		if node != t.Root && node.Expanded {
			if rel, err := filepath.Rel(t.Root.Path, node.Path); err == nil {
				paths = append(paths, rel)
			}
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(t.Root)

	sort.Slice(paths, func(i, j int) bool {
		di := strings.Count(paths[i], string(filepath.Separator))
		dj := strings.Count(paths[j], string(filepath.Separator))
		if di != dj {
			return di < dj
		}
		return paths[i] < paths[j]
	})
	return paths
}

// SelectedPath returns the selected node's path relative to the root;
// "." for the root itself.
func (t *Tree) SelectedPath() string {
	rel, err := filepath.Rel(t.Root.Path, t.Selected().Path)
	if err != nil {
		return "."
	}
	return rel
}

// Restore re-applies a persisted expansion set and selection. Paths that no
// longer exist or are no longer directories are skipped silently.
func (t *Tree) Restore(expanded []string, selected string) {
	// Shallow-first so parents are listed before their children are looked up
	sorted := append([]string(nil), expanded...)
	sort.Slice(sorted, func(i, j int) bool {
		return strings.Count(sorted[i], string(filepath.Separator)) <
			strings.Count(sorted[j], string(filepath.Separator))
	})

	for _, rel := range sorted {
		if rel == "" || rel == "." {
			continue
		}
		node := t.Find(filepath.Join(t.Root.Path, rel))
		if node == nil || !node.IsDir {
			continue
		}
		if !node.Expanded {
			node.Expanded = true
			if !node.Listed {
				t.list(node)
			}
		}
	}

	t.rebuildVisible()

	if selected != "" && selected != "." {
		t.selectPath(filepath.Join(t.Root.Path, selected))
	}
}

// ExpandedDirs returns the absolute paths of all expanded directories,
// root included. This is what the filesystem watcher subscribes to.
func (t *Tree) ExpandedDirs() []string {
	var dirs []string
	var walk func(node *Node)
	walk = func(node *Node) {
		if node.IsDir && node.Expanded {
			dirs = append(dirs, node.Path)
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(t.Root)
	return dirs
}
