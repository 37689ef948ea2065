package app

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dshills/lined/internal/engine/cursor"
	"github.com/dshills/lined/internal/input/key"
	"github.com/dshills/lined/internal/input/mode"
)

// processKey runs one key cycle: dispatch, act on the armed mode, disarm,
// scroll. It returns ErrQuit when the session should end.
func (e *Editor) processKey(ev key.Event) error {
	e.dispatch.Dispatch(ev)
	state := e.dispatch.State()

	var err error
	quitPressed := false

	switch {
	case state.Editor.Armed:
		log.Debug().Stringer("mode", state.Editor.Mode).Msg("editor mode")
		switch state.Editor.Mode {
		case mode.Edit:
			e.editing = true
		case mode.Read:
			e.editing = false
		case mode.Write:
			e.save()
		case mode.Quit:
			quitPressed = true
			err = e.quit()
		}
	case state.Cursor.Armed:
		e.move(state.Cursor.Mode)
	case e.editing:
		e.edit(ev)
	}

	e.dispatch.Disarm()
	e.scroll()
	if !quitPressed {
		e.resetQuit()
	}
	return err
}

func (e *Editor) move(m mode.CursorMode) {
	e.cursor = cursor.Move(e.doc, e.cursor, m, e.renderer.Area())
}

// edit applies a key typed while editing. Keys with no text meaning are
// ignored.
func (e *Editor) edit(ev key.Event) {
	switch {
	case ev.IsChar():
		e.insert(ev.Rune)
	case ev.Key == key.KeyEnter && !ev.IsModified():
		e.insert('\n')
	case ev.Key == key.KeyTab && !ev.IsModified():
		e.insert('\t')
	case ev.Key == key.KeyBackspace:
		if e.cursor.X > 0 || e.cursor.Y > 0 {
			e.move(mode.MoveLeft)
			e.doc.Delete(e.cursor)
		}
	case ev.Key == key.KeyDelete:
		e.doc.Delete(e.cursor)
	}
	e.cursor = cursor.Clamp(e.doc, e.cursor)
}

func (e *Editor) insert(c rune) {
	e.doc.Insert(e.cursor, c)
	e.move(mode.MoveRight)
}

// quit ends the session unless the document is dirty and confirmations
// remain, in which case it warns and counts down.
func (e *Editor) quit() error {
	if e.quitLeft > 0 && e.doc.IsDirty() {
		e.setMessage(fmt.Sprintf(
			"WARNING! File has unsaved changes. Press %s %d more times to quit.", e.quitKey, e.quitLeft))
		e.quitLeft--
		return nil
	}
	if e.doc.IsDirty() {
		log.Warn().Str("path", e.doc.Path).Msg("quitting with unsaved changes")
	}
	return ErrQuit
}

// resetQuit restores the confirmation count after any non-Quit key.
func (e *Editor) resetQuit() {
	if e.quitLeft < e.quitTimes {
		e.quitLeft = e.quitTimes
		e.setMessage("")
	}
}
