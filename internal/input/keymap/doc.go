// Package keymap builds the table that binds key events to actions.
//
// Bindings are written as text, a key specification and an action name:
//
//	{Keys: "Ctrl+W", Action: "Write"}
//	{Keys: "Alt+j",  Action: "Move-Left"}
//
// NewTable parses every binding once and returns an immutable Table. Later
// bindings override earlier ones for the same key, so user bindings are
// appended after Default. An empty action or "None" removes a binding.
// Changing bindings means building a new Table.
package keymap
