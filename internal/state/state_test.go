package state_test

import (
	"os"
	"path/filepath"
	"testing"

	"treeside/internal/errors"
	"treeside/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsNil(t *testing.T) {
	store := state.NewStoreAt(t.TempDir())

	rec, err := store.Load("/some/root")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := state.NewStoreAt(filepath.Join(t.TempDir(), "state"))
	root := "/home/user/project"

	saved := &state.Record{
		Expanded: []string{"src", filepath.Join("src", "lib")},
		Selected: filepath.Join("src", "lib", "main.go"),
	}
	require.NoError(t, store.Save(root, saved))

	loaded, err := store.Load(root)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, root, loaded.Root)
	assert.Equal(t, saved.Expanded, loaded.Expanded)
	assert.Equal(t, saved.Selected, loaded.Selected)
	assert.False(t, loaded.SavedAt.IsZero())
}

func TestRoundTripEmptyExpandedSet(t *testing.T) {
	// Only the root expanded: the empty set must survive the round trip
	store := state.NewStoreAt(t.TempDir())
	root := "/home/user/project"

	require.NoError(t, store.Save(root, &state.Record{Selected: "."}))

	loaded, err := store.Load(root)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Empty(t, loaded.Expanded)
	assert.Equal(t, ".", loaded.Selected)
}

func TestRecordsKeyedByRoot(t *testing.T) {
	store := state.NewStoreAt(t.TempDir())

	require.NoError(t, store.Save("/root/one", &state.Record{Selected: "a"}))
	require.NoError(t, store.Save("/root/two", &state.Record{Selected: "b"}))

	one, err := store.Load("/root/one")
	require.NoError(t, err)
	require.NotNil(t, one)
	assert.Equal(t, "a", one.Selected)

	two, err := store.Load("/root/two")
	require.NoError(t, err)
	require.NotNil(t, two)
	assert.Equal(t, "b", two.Selected)
}

func TestLoadCorruptReturnsNilWithError(t *testing.T) {
	dir := t.TempDir()
	store := state.NewStoreAt(dir)
	root := "/home/user/project"

	// Save a valid record, then scribble over it
	require.NoError(t, store.Save(root, &state.Record{Selected: "x"}))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, entries[0].Name()), []byte("{{{not yaml"), 0o644))

	rec, err := store.Load(root)
	assert.Nil(t, rec)
	require.Error(t, err)
	assert.True(t, errors.IsPersistence(err))
}

func TestSaveOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	store := state.NewStoreAt(dir)
	root := "/home/user/project"

	require.NoError(t, store.Save(root, &state.Record{Selected: "first"}))
	require.NoError(t, store.Save(root, &state.Record{Selected: "second"}))

	loaded, err := store.Load(root)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "second", loaded.Selected)

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveUnwritableDirectory(t *testing.T) {
	// A file where the state directory should be makes MkdirAll fail
	base := t.TempDir()
	blocker := filepath.Join(base, "state")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	store := state.NewStoreAt(blocker)
	err := store.Save("/root", &state.Record{})
	require.Error(t, err)
	assert.True(t, errors.IsPersistence(err))
}
