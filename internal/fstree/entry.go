// Package fstree implements the filesystem tree the sidebar browses: lazy
// directory listing, expansion state, the visible flattening the cursor
// walks, and the navigation operations bound to keys.
package fstree

import (
	"os"
	"sort"
	"strings"

	"treeside/internal/errors"
)

// Entry is a single directory listing result
type Entry struct {
	Name  string
	IsDir bool
}

// ListChildren lists a directory one level deep, directories first, then
// files, case-insensitive within each group. An unreadable or missing
// directory yields an AccessError; callers are expected to treat that as an
// empty listing rather than a failure.
func ListChildren(path string, showHidden bool) ([]Entry, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		kind := errors.AccessDenied
		if os.IsNotExist(err) {
			kind = errors.DirectoryGone
		}
		return nil, errors.NewAccessError("cannot list directory", path, kind, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, e := range dirEntries {
		if !showHidden && strings.HasPrefix(e.Name(), ".") {
			continue
		}
		entries = append(entries, Entry{Name: e.Name(), IsDir: e.IsDir()})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		li, lj := strings.ToLower(entries[i].Name), strings.ToLower(entries[j].Name)
		if li != lj {
			return li < lj
		}
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}
