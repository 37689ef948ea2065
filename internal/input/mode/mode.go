package mode

import (
	"fmt"
	"strings"
)

// Action is a named editing action bound to a key.
// It is implemented only by EditorMode and CursorMode.
type Action interface {
	fmt.Stringer
	isAction()
}

// EditorMode selects what the session does with input.
type EditorMode uint8

const (
	// EditorNone is the cleared editor slot.
	EditorNone EditorMode = iota
	// Read is navigation-only mode.
	Read
	// Edit inserts unmapped keys as text.
	Edit
	// Write saves the document.
	Write
	// Quit asks to end the session.
	Quit
)

var editorNames = [...]string{
	EditorNone: "None",
	Read:       "Read",
	Edit:       "Edit",
	Write:      "Write",
	Quit:       "Quit",
}

func (m EditorMode) String() string {
	if int(m) < len(editorNames) {
		return editorNames[m]
	}
	return fmt.Sprintf("EditorMode(%d)", m)
}

func (EditorMode) isAction() {}

// CursorMode is a navigation action.
type CursorMode uint8

const (
	// CursorNone is the cleared cursor slot.
	CursorNone CursorMode = iota
	MoveLeft
	MoveRight
	HeadLine
	TailLine
	MoveDown
	MoveForward
	PageUp
	PageDown
)

var cursorNames = [...]string{
	CursorNone:  "None",
	MoveLeft:    "Move-Left",
	MoveRight:   "Move-Right",
	HeadLine:    "Head-Line",
	TailLine:    "Tail-Line",
	MoveDown:    "Move-Down",
	MoveForward: "Move-Forward",
	PageUp:      "Page-Up",
	PageDown:    "Page-Down",
}

func (m CursorMode) String() string {
	if int(m) < len(cursorNames) {
		return cursorNames[m]
	}
	return fmt.Sprintf("CursorMode(%d)", m)
}

func (CursorMode) isAction() {}

// ParseAction returns the action with the given name, such as "Write" or
// "Move-Left". Matching ignores case. "None" is not an action.
func ParseAction(name string) (Action, error) {
	name = strings.TrimSpace(name)
	for i, n := range editorNames {
		if i != int(EditorNone) && strings.EqualFold(n, name) {
			return EditorMode(i), nil
		}
	}
	for i, n := range cursorNames {
		if i != int(CursorNone) && strings.EqualFold(n, name) {
			return CursorMode(i), nil
		}
	}
	return nil, fmt.Errorf("unknown action %q", name)
}

// Actions returns every action in declaration order.
func Actions() []Action {
	out := make([]Action, 0, len(editorNames)+len(cursorNames)-2)
	for i := range editorNames[1:] {
		out = append(out, EditorMode(i+1))
	}
	for i := range cursorNames[1:] {
		out = append(out, CursorMode(i+1))
	}
	return out
}
