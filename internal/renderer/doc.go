// Package renderer paints a document session onto a terminal backend.
//
// The screen is split into three parts: the editing area, a status bar
// with the file name, line count and dirty state, and a message bar.
// Only the window of the document selected by the viewport offset is
// drawn. Lines are painted one grapheme cluster per cell group, so
// combining marks and wide characters stay intact.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term)
//	r.Draw(renderer.Frame{Document: doc, Offset: off, Cursor: pos})
package renderer
