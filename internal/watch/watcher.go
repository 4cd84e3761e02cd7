// Package watch refreshes the sidebar when the filesystem changes under it.
// It watches the expanded directories with fsnotify, coalesces bursts of
// events behind a debounce window, and reports the set of directories whose
// listings need refreshing.
package watch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"

	"treeside/internal/errors"
	"treeside/internal/log"
)

// Refresh is a debounced batch of directories whose contents changed
type Refresh struct {
	Dirs []string
}

// Watcher monitors the expanded directories for file changes using fsnotify
type Watcher struct {
	// Debounced refresh batches
	refreshChan chan Refresh

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Quiet period before a batch is emitted
	debounce time.Duration

	// Path components that silence an event (noise directories)
	ignore []glob.Glob

	// Lock for running state and the watched set
	mutex sync.RWMutex

	// Directories currently registered with fsnotify
	watched map[string]bool

	// Whether the watcher is running
	running bool

	// Set once Stop has closed the fsnotify watcher; a stopped watcher
	// cannot be restarted
	stopped bool
}

// New creates a new directory watcher using fsnotify
func New(debounce time.Duration, ignore []glob.Glob) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	return &Watcher{
		refreshChan: make(chan Refresh, 10),
		stopChan:    make(chan struct{}),
		fsWatcher:   fsWatcher,
		debounce:    debounce,
		ignore:      ignore,
		watched:     make(map[string]bool),
	}, nil
}

// SetDirectories synchronizes the watched set with the currently expanded
// directories: new ones are registered, collapsed or vanished ones removed.
// Registration failures are logged and skipped; an unreadable directory is
// simply not watched.
func (w *Watcher) SetDirectories(dirs []string) {
	want := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		want[dir] = true
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	for dir := range w.watched {
		if !want[dir] {
			w.fsWatcher.Remove(dir)
			delete(w.watched, dir)
		}
	}
	for dir := range want {
		if w.watched[dir] {
			continue
		}
		if err := w.fsWatcher.Add(dir); err != nil {
			log.LogWithFields(log.F("directory", dir), log.F("error", err)).Warn("cannot watch directory")
			continue
		}
		w.watched[dir] = true
	}
}

// Refreshes returns the channel that delivers debounced refresh batches
func (w *Watcher) Refreshes() <-chan Refresh {
	return w.refreshChan
}

// ignored reports whether any component of the path matches an ignore glob
func (w *Watcher) ignored(path string) bool {
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if part == "" {
			continue
		}
		for _, g := range w.ignore {
			if g.Match(part) {
				return true
			}
		}
	}
	return false
}

// changedDir maps an event path to the directory whose listing changed
func changedDir(name string) string {
	if info, err := os.Stat(name); err == nil && info.IsDir() {
		return name
	}
	return filepath.Dir(name)
}

// Start begins the event loop. Events are collected into a pending set and
// flushed as one Refresh once the debounce window passes without further
// activity. A watcher that has been stopped cannot be started again; Stop
// releases the underlying fsnotify resources.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.stopped {
		w.mutex.Unlock()
		return errors.New("watcher has been stopped")
	}
	if w.running {
		w.mutex.Unlock()
		return errors.New("watcher already running")
	}
	w.running = true
	w.mutex.Unlock()

	w.stopChan = make(chan struct{})

	go func() {
		pending := make(map[string]bool)
		timer := time.NewTimer(w.debounce)
		if !timer.Stop() {
			<-timer.C
		}

		flush := func() {
			if len(pending) == 0 {
				return
			}
			dirs := make([]string, 0, len(pending))
			for dir := range pending {
				dirs = append(dirs, dir)
			}
			pending = make(map[string]bool)

			select {
			case w.refreshChan <- Refresh{Dirs: dirs}:
			default:
				log.Warn("refresh channel full, dropped batch of %d dirs", len(dirs))
			}
		}

		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				if w.ignored(event.Name) {
					continue
				}
				pending[changedDir(event.Name)] = true
				if event.Op.Has(fsnotify.Rename) || event.Op.Has(fsnotify.Remove) {
					// The entry is gone; its parent's listing changed too
					pending[filepath.Dir(event.Name)] = true
				}

				// Restart the debounce window
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)

			case <-timer.C:
				flush()

			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

			case <-w.stopChan:
				return
			}
		}
	}()

	log.Info("watcher started, debounce %s", w.debounce)
	return nil
}

// Stop halts the watcher and releases the fsnotify resources
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return
	}
	w.stopped = true

	close(w.stopChan)

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("error closing fsnotify watcher")
	}

	w.running = false
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// Directories returns the directories currently being watched
func (w *Watcher) Directories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	dirs := make([]string, 0, len(w.watched))
	for dir := range w.watched {
		dirs = append(dirs, dir)
	}
	return dirs
}
