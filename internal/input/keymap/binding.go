package keymap

import (
	"fmt"
	"strings"

	"github.com/dshills/lined/internal/input/key"
	"github.com/dshills/lined/internal/input/mode"
)

// Binding is a single key-to-action mapping in text form.
type Binding struct {
	// Keys is the key specification, e.g. "Ctrl+W", "<A-q>", "PageDown".
	Keys string

	// Action is the action name, e.g. "Write" or "Move-Left".
	// Empty or "None" unbinds Keys.
	Action string
}

// NewBinding creates a binding.
func NewBinding(keys, action string) Binding {
	return Binding{Keys: keys, Action: action}
}

// IsUnbind returns true if the binding removes Keys instead of binding it.
func (b Binding) IsUnbind() bool {
	a := strings.TrimSpace(b.Action)
	return a == "" || strings.EqualFold(a, "None")
}

// parse resolves the binding. The action is nil for an unbind.
func (b Binding) parse() (key.Event, mode.Action, error) {
	ev, err := key.Parse(b.Keys)
	if err != nil {
		return key.Event{}, nil, fmt.Errorf("binding %q: %w", b.Keys, err)
	}
	if b.IsUnbind() {
		return ev.Normalize(), nil, nil
	}
	a, err := mode.ParseAction(b.Action)
	if err != nil {
		return key.Event{}, nil, fmt.Errorf("binding %q: %w", b.Keys, err)
	}
	return ev.Normalize(), a, nil
}
