package app

import (
	"github.com/rivo/uniseg"
	"github.com/rs/zerolog/log"

	"github.com/dshills/lined/internal/input/key"
	"github.com/dshills/lined/internal/renderer/backend"
)

// prompt asks for a line of text on the message bar. Enter accepts and
// Escape cancels. It returns false when cancelled or when the answer is
// empty.
func (e *Editor) prompt(label string) (string, bool) {
	answer := ""
	defer e.setMessage("")

	for {
		e.setMessage(label + answer)
		e.refresh()

		ev := e.term.PollEvent()
		switch ev.Type {
		case backend.EventKey:
		case backend.EventInterrupt:
			if _, ok := ev.Data.(stopRequest); ok {
				// Leave it for the session loop.
				e.term.PostEvent(ev)
				return "", false
			}
			e.handleInterrupt(ev.Data)
			continue
		case backend.EventNone:
			return "", false
		default:
			continue
		}

		k := ev.Key
		switch {
		case k.Key == key.KeyEnter:
			return answer, answer != ""
		case k.Key == key.KeyEscape:
			return "", false
		case k.Key == key.KeyBackspace:
			answer = dropLastCluster(answer)
		case k.IsChar():
			answer += string(k.Rune)
		}
	}
}

func dropLastCluster(s string) string {
	last := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		last, _ = g.Positions()
	}
	return s[:last]
}

// save writes the document, asking for a name first if it has none.
func (e *Editor) save() {
	prompted := e.doc.Path == ""
	if prompted {
		name, ok := e.prompt("Save as: ")
		if !ok {
			e.setMessage("Save aborted.")
			return
		}
		e.doc.Path = name
	}

	if e.watcher != nil {
		e.watcher.Suppress(selfWriteWindow)
	}
	if err := e.doc.Save(e.store); err != nil {
		opErr := NewOperationError("save", e.doc.Path, err)
		if prompted {
			opErr = opErr.WithContext("new file")
		}
		log.Error().Err(opErr).Msg("save failed")
		e.setMessage("Error writing file!")
		return
	}

	log.Info().Str("path", e.doc.Path).Int("lines", e.doc.Len()).Msg("document saved")
	e.setMessage("File saved successfully")
	e.startWatcher()
}
