package renderer

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// clusterWidth returns the number of cells a grapheme cluster occupies.
func clusterWidth(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w == 0 {
		w = uniseg.StringWidth(cluster)
	}
	return max(w, 0)
}

// StringWidth returns the display width of s, cluster by cluster.
// It agrees with how Draw lays out text.
func StringWidth(s string) int {
	width := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		width += clusterWidth(g.Str())
	}
	return width
}

// truncate cuts s to at most width cells without splitting a cluster.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := clusterWidth(g.Str())
		if used+w > width {
			from, _ := g.Positions()
			return s[:from]
		}
		used += w
	}
	return s
}
