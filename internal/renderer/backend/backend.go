// Package backend provides the terminal surface the editor draws on.
package backend

import (
	"github.com/dshills/lined/internal/input/key"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key key.Event

	// Resize event fields
	Width, Height int

	// Interrupt event fields. Data is whatever the poster attached.
	Data any
}

// KeyEvent wraps a key press.
func KeyEvent(ev key.Event) Event {
	return Event{Type: EventKey, Key: ev}
}

// InterruptEvent wraps a value posted from another goroutine.
func InterruptEvent(data any) Event {
	return Event{Type: EventInterrupt, Data: data}
}

// Color is a 24-bit color. The zero value is the terminal default.
type Color struct {
	R, G, B uint8
	set     bool
}

// ColorDefault leaves the terminal color unchanged.
var ColorDefault = Color{}

// RGB creates a true color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, set: true}
}

// IsDefault returns true if the color is the terminal default.
func (c Color) IsDefault() bool {
	return !c.set
}

// Style is the foreground and background of a cell.
type Style struct {
	Foreground Color
	Background Color
}

// DefaultStyle returns the terminal default style.
func DefaultStyle() Style {
	return Style{}
}

// Cell is a single screen cell holding one grapheme cluster.
type Cell struct {
	// Rune is the first code point of the cluster.
	Rune rune

	// Combining holds the remaining code points of the cluster.
	Combining []rune

	// Width is the display width of the cluster.
	Width int

	Style Style
}

// String returns the cluster held by the cell.
func (c Cell) String() string {
	if c.Rune == 0 {
		return ""
	}
	return string(append([]rune{c.Rune}, c.Combining...))
}

// Backend defines the interface for terminal/display backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the terminal are silently ignored.
	SetCell(x, y int, cell Cell)

	// Clear clears the entire screen with the default style.
	Clear()

	// Show synchronizes the internal buffer with the actual display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent waits for and returns the next terminal event.
	// This is a blocking call.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	// It is safe to call from any goroutine.
	PostEvent(event Event)
}
