// Package line provides the single-line text buffer used by the document.
//
// A Line stores its text as UTF-8 and addresses it in grapheme clusters,
// the unit of one user-perceived character. All column arguments are
// cluster indices, never byte or rune offsets. Out-of-range columns are
// never an error: inserts degrade to appends and deletes become no-ops,
// because those positions arise routinely from cursor motion at the
// boundaries of a line.
package line

import (
	"strings"

	"github.com/rivo/uniseg"
)

// TabWidth is the number of spaces a tab cluster expands to when rendered.
const TabWidth = 4

// Line is one row of document text.
// The zero value is an empty line ready to use.
type Line struct {
	text   string
	length int
}

// New creates a line holding text.
func New(text string) *Line {
	return &Line{
		text:   text,
		length: uniseg.GraphemeClusterCount(text),
	}
}

// Len returns the number of grapheme clusters in the line.
func (l *Line) Len() int {
	return l.length
}

// IsEmpty returns true if the line holds no text.
func (l *Line) IsEmpty() bool {
	return l.length == 0
}

// String returns the stored text.
func (l *Line) String() string {
	return l.text
}

// Bytes returns the UTF-8 encoding written to storage.
// Tabs are kept as-is; rendering never affects the persisted form.
func (l *Line) Bytes() []byte {
	return []byte(l.text)
}

// Insert places c before the cluster at index at.
// If at is past the end, c is appended.
func (l *Line) Insert(at int, c rune) {
	if at < 0 {
		at = 0
	}
	if at >= l.length {
		l.set(l.text + string(c))
		return
	}

	var sb strings.Builder
	sb.Grow(len(l.text) + 4)

	g := uniseg.NewGraphemes(l.text)
	for idx := 0; g.Next(); idx++ {
		if idx == at {
			sb.WriteRune(c)
		}
		sb.WriteString(g.Str())
	}
	l.set(sb.String())
}

// Delete removes the cluster at index at.
// Out-of-range indices are ignored.
func (l *Line) Delete(at int) {
	if at < 0 || at >= l.length {
		return
	}

	var sb strings.Builder
	sb.Grow(len(l.text))

	g := uniseg.NewGraphemes(l.text)
	for idx := 0; g.Next(); idx++ {
		if idx != at {
			sb.WriteString(g.Str())
		}
	}
	l.set(sb.String())
}

// Split truncates the line to its first at clusters and returns the
// remainder as a new line. Splitting at or past the end returns an empty
// line; splitting at 0 moves the whole content.
func (l *Line) Split(at int) *Line {
	var head, tail strings.Builder
	headLen, tailLen := 0, 0

	g := uniseg.NewGraphemes(l.text)
	for idx := 0; g.Next(); idx++ {
		if idx < at {
			head.WriteString(g.Str())
			headLen++
		} else {
			tail.WriteString(g.Str())
			tailLen++
		}
	}

	l.text = head.String()
	l.length = headLen
	return &Line{text: tail.String(), length: tailLen}
}

// Append moves the content of other to the end of l.
// other is left empty.
func (l *Line) Append(other *Line) {
	if other == nil || other.length == 0 {
		return
	}
	l.set(l.text + other.text)
	other.text = ""
	other.length = 0
}

// Render returns the clusters in [start, end) for display.
// Bounds are clamped to the line and start never exceeds end.
// Tab clusters expand to TabWidth spaces.
func (l *Line) Render(start, end int) string {
	end = min(end, l.length)
	start = max(min(start, end), 0)
	if start >= end {
		return ""
	}

	var sb strings.Builder
	g := uniseg.NewGraphemes(l.text)
	for idx := 0; g.Next() && idx < end; idx++ {
		if idx < start {
			continue
		}
		if cluster := g.Str(); cluster == "\t" {
			sb.WriteString(strings.Repeat(" ", TabWidth))
		} else {
			sb.WriteString(cluster)
		}
	}
	return sb.String()
}

// set replaces the text and recounts clusters. A combining rune joins the
// cluster before it, so the count cannot be derived from the edit alone.
func (l *Line) set(text string) {
	l.text = text
	l.length = uniseg.GraphemeClusterCount(text)
}
