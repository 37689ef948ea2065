package keymap

// Default returns the built-in bindings.
//
// Navigation uses Alt so that plain keys stay free for text in Edit mode.
// Move-Forward goes to the next line and Move-Down to the previous one.
func Default() []Binding {
	return []Binding{
		// Editor modes
		{Keys: "Ctrl+W", Action: "Write"},
		{Keys: "Alt+q", Action: "Quit"},
		{Keys: "Alt+e", Action: "Edit"},
		{Keys: "Escape", Action: "Read"},

		// Navigation
		{Keys: "Alt+f", Action: "Move-Forward"},
		{Keys: "Alt+d", Action: "Move-Down"},
		{Keys: "Alt+j", Action: "Move-Left"},
		{Keys: "Alt+k", Action: "Move-Right"},
		{Keys: "Alt+l", Action: "Tail-Line"},
		{Keys: "Alt+h", Action: "Head-Line"},

		{Keys: "Down", Action: "Move-Forward"},
		{Keys: "Up", Action: "Move-Down"},
		{Keys: "Left", Action: "Move-Left"},
		{Keys: "Right", Action: "Move-Right"},
		{Keys: "End", Action: "Tail-Line"},
		{Keys: "Home", Action: "Head-Line"},
		{Keys: "PageDown", Action: "Page-Down"},
		{Keys: "PageUp", Action: "Page-Up"},
	}
}
