// Package state persists the sidebar's browsing state between invocations:
// which directories are expanded and which path the cursor was on, one
// record per working directory.
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"treeside/internal/errors"
)

// Record is the persisted browsing state for one working directory.
// Paths are stored relative to the root so records survive the tree being
// moved wholesale.
type Record struct {
	Root     string    `yaml:"root"`     // Absolute root this record belongs to
	Expanded []string  `yaml:"expanded"` // Expanded directories, relative to root
	Selected string    `yaml:"selected"` // Cursor path, relative to root
	SavedAt  time.Time `yaml:"saved_at"`
}

// Store reads and writes per-root state records in a directory
type Store struct {
	dir string
}

// NewStore creates a store in the standard location under the user config
// directory.
func NewStore() (*Store, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, errors.NewPersistenceError("cannot locate user config directory", "", errors.StateUnwritable, err)
	}
	return NewStoreAt(filepath.Join(base, "treeside", "state")), nil
}

// NewStoreAt creates a store rooted at an explicit directory
func NewStoreAt(dir string) *Store {
	return &Store{dir: dir}
}

// recordPath derives the record filename from the root path. Hashing keeps
// the filename valid regardless of what characters the root contains.
func (s *Store) recordPath(root string) string {
	sum := sha256.Sum256([]byte(root))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:8])+".yaml")
}

// Load reads the record for the given root. A missing record, a corrupt
// record, or a record written for a different root all return nil, which
// callers treat as "start from defaults". Only the corrupt case carries an
// error, so it can be logged.
func (s *Store) Load(root string) (*Record, error) {
	path := s.recordPath(root)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewPersistenceError("state file unreadable", path, errors.StateUnreadable, err)
	}

	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, errors.NewPersistenceError("state file corrupt", path, errors.StateUnreadable, err)
	}

	// A hash collision or a copied state directory could hand us another
	// root's record; treat it as absent.
	if rec.Root != root {
		return nil, nil
	}

	return &rec, nil
}

// Save writes the record for the given root atomically: the content goes to
// a temp file in the same directory, which is then renamed over the target.
// A crash mid-write never corrupts the previously saved state.
func (s *Store) Save(root string, rec *Record) error {
	rec.Root = root
	rec.SavedAt = time.Now()
	if rec.Expanded == nil {
		rec.Expanded = []string{}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.NewPersistenceError("cannot create state directory", s.dir, errors.StateUnwritable, err)
	}

	data, err := yaml.Marshal(rec)
	if err != nil {
		return errors.NewPersistenceError("cannot encode state", s.recordPath(root), errors.StateUnwritable, err)
	}

	tmp, err := os.CreateTemp(s.dir, "state-*.yaml.tmp")
	if err != nil {
		return errors.NewPersistenceError("cannot create temp state file", s.dir, errors.StateUnwritable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewPersistenceError("cannot write temp state file", tmpName, errors.StateUnwritable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewPersistenceError("cannot close temp state file", tmpName, errors.StateUnwritable, err)
	}

	target := s.recordPath(root)
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return errors.NewPersistenceError("cannot replace state file", target, errors.StateUnwritable, err)
	}

	return nil
}
