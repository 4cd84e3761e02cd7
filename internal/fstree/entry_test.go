package fstree_test

import (
	"os"
	"path/filepath"
	"testing"

	"treeside/internal/errors"
	"treeside/internal/fstree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryNames(entries []fstree.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestListChildrenOrdering(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "z.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "y.txt"), nil, 0o644))

	entries, err := fstree.ListChildren(dir, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "y.txt", "z.txt"}, entryNames(entries))
	assert.True(t, entries[0].IsDir)
	assert.False(t, entries[2].IsDir)
}

func TestListChildrenCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Beta"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "alpha"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Zed.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "young.txt"), nil, 0o644))

	entries, err := fstree.ListChildren(dir, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "Beta", "young.txt", "Zed.txt"}, entryNames(entries))
}

func TestListChildrenHidden(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), nil, 0o644))

	entries, err := fstree.ListChildren(dir, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, entryNames(entries))

	entries, err = fstree.ListChildren(dir, true)
	require.NoError(t, err)
	assert.Equal(t, []string{".git", ".env", "main.go"}, entryNames(entries))
}

func TestListChildrenMissingDir(t *testing.T) {
	_, err := fstree.ListChildren(filepath.Join(t.TempDir(), "missing"), true)
	require.Error(t, err)
	assert.True(t, errors.IsAccess(err))

	var accessErr *errors.AccessError
	require.True(t, errors.As(err, &accessErr))
	assert.Equal(t, errors.DirectoryGone, accessErr.Kind())
}

func TestListChildrenEmptyDir(t *testing.T) {
	entries, err := fstree.ListChildren(t.TempDir(), true)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
