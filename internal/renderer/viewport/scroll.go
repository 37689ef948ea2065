// Package viewport maps document coordinates onto a fixed-size cell grid.
//
// The viewport keeps no state of its own: the caller holds the current
// offset and recomputes it from the cursor after every edit or motion.
package viewport

// Point is a column/line pair. It is used both for the cursor and for the
// top-left corner of the visible window.
type Point struct {
	X int
	Y int
}

// Size is the extent of the editing area in cells.
type Size struct {
	Width  int
	Height int
}

// Scroll returns the offset that keeps cursor inside a window of the given
// size, moving the window as little as possible from offset.
//
// For a positive width and height the result satisfies
//
//	off.Y <= cursor.Y < off.Y+Height
//	off.X <= cursor.X < off.X+Width
//
// An axis with a non-positive extent is left unchanged.
func Scroll(offset, cursor Point, size Size) Point {
	return Point{
		X: scrollAxis(offset.X, cursor.X, size.Width),
		Y: scrollAxis(offset.Y, cursor.Y, size.Height),
	}
}

func scrollAxis(off, pos, extent int) int {
	if extent <= 0 {
		return off
	}
	switch {
	case pos < off:
		off = pos
	case pos >= off+extent:
		off = pos - extent + 1
	}
	return max(off, 0)
}
