package cursor

import (
	"github.com/dshills/lined/internal/engine/document"
	"github.com/dshills/lined/internal/engine/line"
	"github.com/dshills/lined/internal/input/mode"
	"github.com/dshills/lined/internal/renderer/viewport"
)

// Rows is the read-only view of a document that navigation needs.
type Rows interface {
	Len() int
	Row(index int) (*line.Line, bool)
}

// Move returns the position reached from pos by applying m. Horizontal
// jumps use the screen width and page jumps the screen height.
func Move(doc Rows, pos document.Position, m mode.CursorMode, screen viewport.Size) document.Position {
	x, y := pos.X, pos.Y
	height := doc.Len()
	width := rowLen(doc, y)

	switch m {
	case mode.MoveForward:
		if y < height {
			y++
		}
	case mode.MoveDown:
		y = max(y-1, 0)
	case mode.MoveRight:
		if x < width {
			x++
		} else if y < height {
			x, y = 0, y+1
		}
	case mode.MoveLeft:
		if x > 0 {
			x--
		} else if y > 0 {
			y--
			x = rowLen(doc, y)
		}
	case mode.TailLine:
		if x+screen.Width < width {
			x += screen.Width
		} else {
			x = width
		}
	case mode.HeadLine:
		if x > screen.Width {
			x -= screen.Width
		} else {
			x = 0
		}
	case mode.PageDown:
		if y+screen.Height < height {
			y += screen.Height
		} else {
			y = height
		}
	case mode.PageUp:
		if y > screen.Height {
			y -= screen.Height
		} else {
			y = 0
		}
	}

	return Clamp(doc, document.Position{X: x, Y: y})
}

// Clamp returns the nearest valid position to pos.
func Clamp(doc Rows, pos document.Position) document.Position {
	y := min(max(pos.Y, 0), doc.Len())
	x := min(max(pos.X, 0), rowLen(doc, y))
	return document.Position{X: x, Y: y}
}

// rowLen is the length of line y, or 0 on the virtual line.
func rowLen(doc Rows, y int) int {
	if l, ok := doc.Row(y); ok {
		return l.Len()
	}
	return 0
}
