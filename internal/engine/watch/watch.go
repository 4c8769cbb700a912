// Package watch reports edits to the scene file and the meshes it loads.
package watch

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/tessera/internal/logger"
)

// DefaultDebounce coalesces the burst of events editors emit per save.
const DefaultDebounce = 200 * time.Millisecond

// ErrClosed is returned when using a closed Watcher.
var ErrClosed = errors.New("watcher closed")

// Watcher watches a set of files. Directories are watched rather than the
// files themselves so that editors replacing a file by rename are seen.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu     sync.Mutex
	files  map[string]bool // absolute paths
	dirs   map[string]int  // watch refcount per directory
	closed bool

	changes chan []string
	done    chan struct{}
	wg      sync.WaitGroup
}

// New starts a watcher. A debounce of zero uses DefaultDebounce.
func New(debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		files:    make(map[string]bool),
		dirs:     make(map[string]int),
		changes:  make(chan []string, 1),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Changes delivers the set of changed files after each quiet period.
func (w *Watcher) Changes() <-chan []string {
	return w.changes
}

// Set replaces the watched files.
func (w *Watcher) Set(files ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}

	next := make(map[string]bool, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		next[abs] = true
	}

	var errs []error
	for f := range next {
		if !w.files[f] {
			if err := w.addDir(filepath.Dir(f)); err != nil {
				errs = append(errs, err)
				delete(next, f)
			}
		}
	}
	for f := range w.files {
		if !next[f] {
			w.removeDir(filepath.Dir(f))
		}
	}
	w.files = next
	return errors.Join(errs...)
}

// Files returns the number of watched files.
func (w *Watcher) Files() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.files)
}

func (w *Watcher) addDir(dir string) error {
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	return nil
}

func (w *Watcher) removeDir(dir string) {
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		_ = w.fsw.Remove(dir)
	}
}

func (w *Watcher) watched(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[abs]
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var (
		pending = make(map[string]bool)
		timer   *time.Timer
		fire    <-chan time.Time
	)

	for {
		select {
		case e, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) && !e.Has(fsnotify.Rename) {
				continue
			}
			if !w.watched(e.Name) {
				continue
			}
			pending[e.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for f := range pending {
				changed = append(changed, f)
			}
			clear(pending)
			logger.Debug("files changed", zap.Strings("files", changed))

			select {
			case w.changes <- changed:
			case <-w.done:
				return
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("file watcher error", zap.Error(err))

		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}
