package app

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dshills/lined/internal/renderer/backend"
	"github.com/dshills/lined/internal/watch"
)

// selfWriteWindow covers the events our own save produces.
const selfWriteWindow = time.Second

// fileChanged is posted by the watcher goroutine.
type fileChanged struct {
	path string
}

// startWatcher watches the document's file if watching is enabled and no
// watcher runs yet.
func (e *Editor) startWatcher() {
	if !e.watchFile || e.watcher != nil || e.doc.Path == "" {
		return
	}

	path := e.doc.Path
	w, err := watch.New(path, func() {
		e.term.PostEvent(backend.InterruptEvent(fileChanged{path: path}))
	})
	if err != nil {
		log.Warn().Err(NewOperationError("watch", path, err)).Msg("file watching disabled")
		return
	}
	e.watcher = w
	log.Debug().Str("path", w.Path()).Msg("watching file")
}

func (e *Editor) stopWatcher() {
	if e.watcher == nil {
		return
	}
	if err := e.watcher.Close(); err != nil {
		log.Warn().Err(err).Msg("closing file watcher")
	}
	e.watcher = nil
}

func (e *Editor) handleInterrupt(data any) {
	if ev, ok := data.(fileChanged); ok && ev.path == e.doc.Path {
		e.setMessage("File changed on disk")
	}
}
