// Package key defines the key events fed to the mode dispatcher.
//
// An Event is a comparable value: a Key, the Rune for character keys and
// the active Modifiers. Key specifications used in key bindings are parsed
// with Parse and accept three spellings:
//
//   - Simple keys: "a", "A", "Enter", "Escape", "PageDown"
//   - With modifiers: "Ctrl+W", "Alt+q", "Ctrl+Shift+Left"
//   - Vim-style: "<C-w>", "<A-q>", "<CR>", "<Esc>"
package key
