package renderer

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/lined/internal/engine/document"
	"github.com/dshills/lined/internal/renderer/backend"
	"github.com/dshills/lined/internal/renderer/viewport"
)

const (
	// chromeRows is the status bar plus the message bar.
	chromeRows = 2

	// nameWidth caps the file name shown in the status bar.
	nameWidth = 20

	noName = "[No Name]"
)

// StatusStyle is the style of the status bar.
var StatusStyle = backend.Style{
	Foreground: backend.RGB(63, 63, 63),
	Background: backend.RGB(239, 239, 239),
}

// Frame is everything needed to paint one screen.
type Frame struct {
	Document *document.Document
	Offset   viewport.Point
	Cursor   document.Position

	// Message is shown on the last row. Expiry is up to the caller.
	Message string

	// Version appears in the welcome message of an empty document.
	Version string
}

// Renderer draws frames onto a backend.
type Renderer struct {
	backend backend.Backend
}

// New creates a renderer for b.
func New(b backend.Backend) *Renderer {
	return &Renderer{backend: b}
}

// EditArea returns the size of the editing area for a terminal of the
// given dimensions.
func EditArea(width, height int) viewport.Size {
	return viewport.Size{Width: max(width, 0), Height: max(height-chromeRows, 0)}
}

// Area returns the size of the editing area of the backend.
func (r *Renderer) Area() viewport.Size {
	return EditArea(r.backend.Size())
}

// Draw paints f and places the cursor.
func (r *Renderer) Draw(f Frame) {
	width, height := r.backend.Size()
	area := EditArea(width, height)

	r.backend.HideCursor()
	r.backend.Clear()

	r.drawRows(f, area)
	r.drawStatusBar(f, area.Height, width)
	r.drawMessageBar(f.Message, area.Height+1)

	if x, y, ok := cursorCell(f, area); ok {
		r.backend.ShowCursor(x, y)
	}
	r.backend.Show()
}

// Goodbye clears the screen and leaves a farewell on the first row.
func (r *Renderer) Goodbye() {
	r.backend.HideCursor()
	r.backend.Clear()
	r.text(0, 0, "Goodbye.", backend.DefaultStyle())
	r.backend.Show()
}

func (r *Renderer) drawRows(f Frame, area viewport.Size) {
	doc := f.Document
	for row := 0; row < area.Height; row++ {
		l, ok := doc.Row(row + f.Offset.Y)
		switch {
		case ok:
			r.text(0, row, l.Render(f.Offset.X, f.Offset.X+area.Width), backend.DefaultStyle())
		case doc.IsEmpty() && row == area.Height/3:
			r.text(0, row, welcome(f.Version, area.Width), backend.DefaultStyle())
		default:
			r.text(0, row, "~", backend.DefaultStyle())
		}
	}
}

// welcome centres the greeting behind the row marker.
func welcome(version string, width int) string {
	msg := fmt.Sprintf("Text Editor -- version %s", version)
	padding := max(width-StringWidth(msg), 0) / 2
	return "~" + strings.Repeat(" ", max(padding-1, 0)) + msg
}

func (r *Renderer) drawStatusBar(f Frame, y, width int) {
	doc := f.Document

	name := noName
	if doc.Path != "" {
		name = runewidth.Truncate(doc.Path, nameWidth, "")
	}
	state := "(up to date)"
	if doc.IsDirty() {
		state = "(modified)"
	}

	left := fmt.Sprintf("%s - %d lines %s", name, doc.Len(), state)
	right := fmt.Sprintf("%d/%d", f.Cursor.Y+1, doc.Len())

	status := left
	if gap := width - StringWidth(left) - StringWidth(right); gap > 0 {
		status += strings.Repeat(" ", gap)
	}
	status = truncate(status+right, width)
	status += strings.Repeat(" ", max(width-StringWidth(status), 0))

	r.text(0, y, status, StatusStyle)
}

// drawMessageBar relies on text to cut the message at the screen edge.
func (r *Renderer) drawMessageBar(msg string, y int) {
	r.text(0, y, msg, backend.DefaultStyle())
}

// text paints s from column x, one cluster at a time, until the row is
// full. Zero-width clusters are skipped.
func (r *Renderer) text(x, y int, s string, style backend.Style) {
	width, _ := r.backend.Size()

	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := clusterWidth(g.Str())
		if w == 0 {
			continue
		}
		if x+w > width {
			return
		}
		runes := g.Runes()
		r.backend.SetCell(x, y, backend.Cell{
			Rune:      runes[0],
			Combining: runes[1:],
			Width:     w,
			Style:     style,
		})
		x += w
	}
}

// cursorCell maps the document cursor onto the screen. The column is the
// width of the rendered text between the offset and the cursor.
func cursorCell(f Frame, area viewport.Size) (x, y int, ok bool) {
	y = f.Cursor.Y - f.Offset.Y
	if y < 0 || y >= area.Height {
		return 0, 0, false
	}
	if l, found := f.Document.Row(f.Cursor.Y); found {
		x = StringWidth(l.Render(f.Offset.X, f.Cursor.X))
	}
	// Tabs and wide clusters can be wider than the scrolled window.
	x = min(x, max(area.Width-1, 0))
	return x, y, true
}
