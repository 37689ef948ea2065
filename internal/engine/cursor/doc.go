// Package cursor computes where navigation actions move the cursor.
//
// Move is a pure function of the document shape, the current position,
// the navigation mode and the size of the editing area. It never touches
// the document. Every result is clamped so that the position is valid:
// the line index is at most the number of lines (the virtual line past
// the end) and the column is at most the length of that line.
//
// The mode names keep their historical meaning: MoveForward advances to
// the next line and MoveDown returns to the previous one.
package cursor
