package app

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dshills/lined/internal/config"
	"github.com/dshills/lined/internal/engine/document"
	"github.com/dshills/lined/internal/input/keymap"
	"github.com/dshills/lined/internal/input/mode"
	"github.com/dshills/lined/internal/renderer"
	"github.com/dshills/lined/internal/renderer/backend"
	"github.com/dshills/lined/internal/renderer/viewport"
	"github.com/dshills/lined/internal/storage"
	"github.com/dshills/lined/internal/watch"
)

// Options configures an editing session.
type Options struct {
	// Path is the file to open. Empty starts an unnamed document.
	Path string

	// Version is shown in the welcome message.
	Version string

	// Config holds settings. Nil means config.Default().
	Config *config.Config

	// Keys is the key table. Nil builds one from Config.
	Keys *keymap.Table

	// Store reads and writes files. Nil means a default FileStore.
	Store *storage.FileStore

	// WatchFile reports changes made to the file by other programs.
	WatchFile bool

	// Clock returns the current time. Nil means time.Now.
	Clock func() time.Time
}

// Editor is one editing session.
type Editor struct {
	term     backend.Backend
	renderer *renderer.Renderer
	dispatch *mode.Dispatcher
	store    *storage.FileStore
	watcher  *watch.FileWatcher
	clock    func() time.Time
	version  string

	// Key names shown in help and warnings.
	writeKey string
	quitKey  string

	doc    *document.Document
	cursor document.Position
	offset viewport.Point

	editing  bool
	quitting bool

	quitTimes int
	quitLeft  int

	message    statusMessage
	messageTTL time.Duration

	watchFile bool
}

// New creates a session drawing on term. The file in opts.Path is read
// immediately; if that fails the session starts with an empty unnamed
// document and an error message.
func New(opts Options, term backend.Backend) (*Editor, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	keys := opts.Keys
	if keys == nil {
		tbl, err := cfg.KeyTable()
		if err != nil {
			return nil, NewOperationError("load", "key bindings", err)
		}
		keys = tbl
	}

	e := &Editor{
		term:       term,
		renderer:   renderer.New(term),
		dispatch:   mode.NewDispatcher(keys),
		store:      opts.Store,
		clock:      opts.Clock,
		version:    opts.Version,
		quitTimes:  cfg.Editor.QuitTimes,
		quitLeft:   cfg.Editor.QuitTimes,
		messageTTL: cfg.MessageDuration(),
		watchFile:  opts.WatchFile,
		writeKey:   keyLabel(keys, mode.Write),
		quitKey:    keyLabel(keys, mode.Quit),
	}
	if e.store == nil {
		e.store = storage.NewFileStore()
	}
	if e.clock == nil {
		e.clock = time.Now
	}

	e.open(opts.Path)
	return e, nil
}

// helpMessage names the keys that save and quit.
func (e *Editor) helpMessage() string {
	return "HELP: " + e.writeKey + " = write | HELP: " + e.quitKey + " = quit"
}

// keyLabel returns the first key bound to action written the way the
// messages show it, such as "Ctrl-W" or "Alt-Q".
func keyLabel(keys *keymap.Table, action mode.Action) string {
	names := keys.KeysFor(action)
	if len(names) == 0 {
		return "(unbound)"
	}
	parts := strings.Split(names[0], "+")
	if last := parts[len(parts)-1]; len([]rune(last)) == 1 {
		parts[len(parts)-1] = strings.ToUpper(last)
	}
	return strings.Join(parts, "-")
}

// open loads path into the session. An empty path gives a new document.
func (e *Editor) open(path string) {
	e.setMessage(e.helpMessage())
	if path == "" {
		e.doc = document.New()
		return
	}

	lines, err := e.store.ReadLines(path)
	if err != nil {
		log.Warn().Err(NewOperationError("open", path, err)).Msg("could not open file")
		e.doc = document.New()
		e.setMessage("ERR: could not open file: " + path)
		return
	}

	e.doc = document.Open(slices.Values(lines))
	e.doc.Path = path
	log.Info().Str("path", path).Int("lines", e.doc.Len()).Msg("document opened")
	e.startWatcher()
}

// Run takes over the terminal and processes events until the user quits.
func (e *Editor) Run() error {
	if err := e.term.Init(); err != nil {
		return NewOperationError("init", "terminal", err)
	}
	defer e.term.Shutdown()
	defer e.stopWatcher()

	log.Info().Str("path", e.doc.Path).Msg("session started")
	for {
		e.refresh()
		if e.quitting {
			log.Info().Msg("session ended")
			return nil
		}

		if err := e.handleEvent(e.term.PollEvent()); err != nil {
			if !errors.Is(err, ErrQuit) {
				return err
			}
			e.quitting = true
		}
	}
}

// stopRequest asks the session loop to end.
type stopRequest struct{}

// Stop asks a running session to end without confirmation. It is safe to
// call from any goroutine.
func (e *Editor) Stop() {
	e.term.PostEvent(backend.InterruptEvent(stopRequest{}))
}

// Document returns the session's document.
func (e *Editor) Document() *document.Document {
	return e.doc
}

// Cursor returns the cursor position.
func (e *Editor) Cursor() document.Position {
	return e.cursor
}

// Editing reports whether typed keys edit the document.
func (e *Editor) Editing() bool {
	return e.editing
}

func (e *Editor) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return e.processKey(ev.Key)
	case backend.EventResize:
		e.scroll()
	case backend.EventInterrupt:
		if _, ok := ev.Data.(stopRequest); ok {
			return ErrQuit
		}
		e.handleInterrupt(ev.Data)
	case backend.EventNone:
		// The terminal is gone.
		return ErrQuit
	}
	return nil
}

// refresh draws the current state, or the farewell once quitting.
func (e *Editor) refresh() {
	if e.quitting {
		e.renderer.Goodbye()
		return
	}
	e.renderer.Draw(renderer.Frame{
		Document: e.doc,
		Offset:   e.offset,
		Cursor:   e.cursor,
		Message:  e.visibleMessage(),
		Version:  e.version,
	})
}

// scroll moves the viewport so the cursor is inside it.
func (e *Editor) scroll() {
	e.offset = viewport.Scroll(e.offset, viewport.Point{X: e.cursor.X, Y: e.cursor.Y}, e.renderer.Area())
}
