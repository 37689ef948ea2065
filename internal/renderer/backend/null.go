package backend

import (
	"strings"
)

// NullBackend is an in-memory backend for testing.
type NullBackend struct {
	width, height int
	cells         [][]Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	events        chan Event
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

func (b *NullBackend) Init() error {
	b.cells = blank(b.width, b.height)
	return nil
}

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell Cell) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
		for i := 1; i < cell.Width && x+i < b.width; i++ {
			b.cells[y][x+i] = Cell{}
		}
	}
}

// Cell returns the cell at the given position.
func (b *NullBackend) Cell(x, y int) Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return emptyCell()
}

func (b *NullBackend) Clear() {
	b.cells = blank(b.width, b.height)
}

func (b *NullBackend) Show() {}

func (b *NullBackend) ShowCursor(x, y int) {
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.cursorVisible = false
}

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

// CursorPosition returns the current cursor position for testing.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	return b.cursorX, b.cursorY, b.cursorVisible
}

// Resize simulates a terminal resize for testing. The resize event is
// queued like a real one.
func (b *NullBackend) Resize(width, height int) {
	b.width = width
	b.height = height
	b.cells = blank(width, height)
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}

// Dump returns the screen as text, one line per row with trailing spaces
// removed. Wide clusters occupy their first cell only.
func (b *NullBackend) Dump() string {
	var sb strings.Builder
	for _, row := range b.cells {
		var line strings.Builder
		for _, c := range row {
			line.WriteString(c.String())
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func emptyCell() Cell {
	return Cell{Rune: ' ', Width: 1}
}

func blank(width, height int) [][]Cell {
	cells := make([][]Cell, height)
	for i := range cells {
		cells[i] = make([]Cell, width)
		for j := range cells[i] {
			cells[i][j] = emptyCell()
		}
	}
	return cells
}
