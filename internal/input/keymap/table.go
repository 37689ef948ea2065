package keymap

import (
	"errors"
	"sort"

	"github.com/dshills/lined/internal/input/key"
	"github.com/dshills/lined/internal/input/mode"
)

// Table is an immutable mapping from key events to actions.
// A Table is safe to share; nothing mutates it after NewTable.
type Table struct {
	actions map[key.Event]mode.Action
}

// NewTable parses bindings in order and builds a table. All invalid
// bindings are reported together.
func NewTable(bindings []Binding) (*Table, error) {
	t := &Table{actions: make(map[key.Event]mode.Action, len(bindings))}

	var errs []error
	for _, b := range bindings {
		ev, a, err := b.parse()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if a == nil {
			delete(t.actions, ev)
			continue
		}
		t.actions[ev] = a
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return t, nil
}

// Lookup returns the action bound to ev.
func (t *Table) Lookup(ev key.Event) (mode.Action, bool) {
	a, ok := t.actions[ev.Normalize()]
	return a, ok
}

// Len returns the number of bound keys.
func (t *Table) Len() int {
	return len(t.actions)
}

// Bindings returns the table contents sorted by key name, for help text
// and debugging.
func (t *Table) Bindings() []Binding {
	out := make([]Binding, 0, len(t.actions))
	for ev, a := range t.actions {
		out = append(out, Binding{Keys: ev.String(), Action: a.String()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Keys < out[j].Keys
	})
	return out
}

// KeysFor returns the key names bound to action, sorted.
func (t *Table) KeysFor(action mode.Action) []string {
	var out []string
	for ev, a := range t.actions {
		if a == action {
			out = append(out, ev.String())
		}
	}
	sort.Strings(out)
	return out
}
