// Package watch reports changes made to a file by other programs.
//
// A FileWatcher watches the directory containing the file, since editors
// and tools often replace a file by renaming a new one over it, which
// drops a watch placed on the file itself. Bursts of events are coalesced
// and the callback runs once per burst on the watcher's goroutine.
package watch

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// ErrWatcherClosed is returned when using a closed watcher.
var ErrWatcherClosed = errors.New("watcher is closed")

// DefaultDelay is how long a burst of events is collected.
const DefaultDelay = 100 * time.Millisecond

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(w *FileWatcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// FileWatcher calls a function when a single file changes on disk.
type FileWatcher struct {
	path     string
	onChange func()
	delay    time.Duration

	watcher *fsnotify.Watcher

	mu            sync.Mutex
	timer         *time.Timer
	suppressUntil time.Time
	closed        bool

	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// New starts watching path. onChange is called from another goroutine and
// must not touch editor state directly.
func New(path string, onChange func(), opts ...Option) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &FileWatcher{
		path:     abs,
		onChange: onChange,
		delay:    DefaultDelay,
		watcher:  fsw,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Suppress ignores changes for the next d, so the editor's own saves are
// not reported back to it.
func (w *FileWatcher) Suppress(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.suppressUntil = time.Now().Add(d)
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Close stops the watcher. Pending notifications are dropped.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	w.closedWg.Wait()
	return w.watcher.Close()
}

// processLoop handles incoming fsnotify events.
func (w *FileWatcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				w.schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Str("path", w.path).Msg("file watch error")
		}
	}
}

// relevant reports content changes to the watched file.
func (w *FileWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) ||
		ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename)
}

// schedule starts or restarts the debounce timer.
func (w *FileWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || time.Now().Before(w.suppressUntil) {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

func (w *FileWatcher) fire() {
	w.mu.Lock()
	if w.closed || time.Now().Before(w.suppressUntil) {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.mu.Unlock()

	log.Debug().Str("path", w.path).Msg("file changed on disk")
	w.onChange()
}
