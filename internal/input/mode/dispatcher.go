package mode

import (
	"github.com/dshills/lined/internal/input/key"
)

// EditorSlot holds the editor mode and whether it was set this cycle.
type EditorSlot struct {
	Mode  EditorMode
	Armed bool
}

// CursorSlot holds the cursor mode and whether it was set this cycle.
type CursorSlot struct {
	Mode  CursorMode
	Armed bool
}

// State is the dispatcher state. At most one slot is armed.
type State struct {
	Editor EditorSlot
	Cursor CursorSlot
}

// InitialState is the state of a new session: Read, nothing armed.
func InitialState() State {
	return State{Editor: EditorSlot{Mode: Read}}
}

// Armed returns the armed action, if any.
func (s State) Armed() (Action, bool) {
	switch {
	case s.Editor.Armed:
		return s.Editor.Mode, true
	case s.Cursor.Armed:
		return s.Cursor.Mode, true
	default:
		return nil, false
	}
}

// Disarmed returns s with both armed flags cleared.
func (s State) Disarmed() State {
	s.Editor.Armed = false
	s.Cursor.Armed = false
	return s
}

// Next returns the state after action a: the slot of a's family is set
// and armed, the other slot is cleared.
func Next(s State, a Action) State {
	switch a := a.(type) {
	case EditorMode:
		return State{
			Editor: EditorSlot{Mode: a, Armed: true},
			Cursor: CursorSlot{Mode: CursorNone},
		}
	case CursorMode:
		return State{
			Editor: EditorSlot{Mode: EditorNone},
			Cursor: CursorSlot{Mode: a, Armed: true},
		}
	default:
		return s
	}
}

// Table resolves key events to actions.
type Table interface {
	Lookup(ev key.Event) (Action, bool)
}

// Dispatcher turns key events into mode state through a fixed table.
// It is not safe for concurrent use; it belongs to the session loop.
type Dispatcher struct {
	table Table
	state State
}

// NewDispatcher creates a dispatcher in the initial state.
func NewDispatcher(table Table) *Dispatcher {
	return &Dispatcher{
		table: table,
		state: InitialState(),
	}
}

// Dispatch applies the action bound to ev. It returns false, leaving the
// state unchanged, when ev is not bound.
func (d *Dispatcher) Dispatch(ev key.Event) bool {
	a, ok := d.table.Lookup(ev)
	if !ok {
		return false
	}
	d.state = Next(d.state, a)
	return true
}

// State returns the current state.
func (d *Dispatcher) State() State {
	return d.state
}

// Disarm clears both armed flags. The orchestrator calls it once the armed
// action has been performed.
func (d *Dispatcher) Disarm() {
	d.state = d.state.Disarmed()
}
