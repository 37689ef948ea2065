// Package document provides the multi-line buffer edited by a session.
//
// A Document owns an ordered list of lines plus the path it was loaded
// from and a dirty flag. Edits are addressed by cursor Position; the row
// one past the last line is a virtual empty line that materializes on the
// first insert. Positions outside the document are resolved by no-op or
// append policies, never by errors.
package document

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/dshills/lined/internal/engine/line"
)

// ErrNoPath is returned when saving a document that has no path yet.
var ErrNoPath = errors.New("document has no path")

// Position is a cursor location: X is the grapheme column and Y the line
// index, both zero-based.
type Position struct {
	X int
	Y int
}

// Writer persists the lines of a document.
type Writer interface {
	// WriteLines writes each line to path, each followed by a newline.
	WriteLines(path string, lines iter.Seq[[]byte]) error
}

// Document is an ordered sequence of lines with path and dirty state.
type Document struct {
	// Path is where the document is saved. Empty means unnamed.
	Path string

	lines []*line.Line
	dirty bool
}

// New creates an empty unnamed document.
func New() *Document {
	return &Document{}
}

// Open creates a document with one line per element of lines.
// The result is clean.
func Open(lines iter.Seq[string]) *Document {
	d := &Document{}
	for text := range lines {
		d.lines = append(d.lines, line.New(text))
	}
	return d
}

// Row returns the line at index, or false if there is none.
func (d *Document) Row(index int) (*line.Line, bool) {
	if index < 0 || index >= len(d.lines) {
		return nil, false
	}
	return d.lines[index], true
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// IsEmpty returns true if the document has no lines.
func (d *Document) IsEmpty() bool {
	return len(d.lines) == 0
}

// IsDirty returns true if the content changed since it was opened or saved.
func (d *Document) IsDirty() bool {
	return d.dirty
}

// Insert puts c at the given position. A newline splits the line.
// Inserting on the virtual line past the end creates a new line.
func (d *Document) Insert(at Position, c rune) {
	if at.Y < 0 || at.Y > len(d.lines) {
		return
	}
	d.dirty = true

	if c == '\n' {
		d.insertNewline(at)
		return
	}

	if at.Y == len(d.lines) {
		l := &line.Line{}
		l.Insert(0, c)
		d.lines = append(d.lines, l)
		return
	}
	d.lines[at.Y].Insert(at.X, c)
}

// insertNewline splits the line at the position, keeping the prefix in
// place and inserting the suffix as the next line.
func (d *Document) insertNewline(at Position) {
	if at.Y == len(d.lines) {
		d.lines = append(d.lines, &line.Line{})
		return
	}
	tail := d.lines[at.Y].Split(at.X)
	d.lines = slices.Insert(d.lines, at.Y+1, tail)
}

// Delete removes the cluster at the position. At the end of a line that
// has a successor, the successor is merged into it instead. A position
// with nothing to remove leaves the document clean.
func (d *Document) Delete(at Position) {
	if at.Y < 0 || at.Y >= len(d.lines) {
		return
	}

	current := d.lines[at.Y]
	switch {
	case at.X == current.Len() && at.Y+1 < len(d.lines):
		next := d.lines[at.Y+1]
		d.lines = slices.Delete(d.lines, at.Y+1, at.Y+2)
		current.Append(next)
	case at.X >= 0 && at.X < current.Len():
		current.Delete(at.X)
	default:
		return
	}
	d.dirty = true
}

// Save writes the document to its path through w. On success the document
// becomes clean; on failure it stays dirty.
func (d *Document) Save(w Writer) error {
	if d.Path == "" {
		return ErrNoPath
	}
	if err := w.WriteLines(d.Path, d.persisted()); err != nil {
		return fmt.Errorf("saving %s: %w", d.Path, err)
	}
	d.dirty = false
	return nil
}

// persisted yields the stored bytes of each line in order.
func (d *Document) persisted() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for _, l := range d.lines {
			if !yield(l.Bytes()) {
				return
			}
		}
	}
}
