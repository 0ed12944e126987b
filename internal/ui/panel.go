package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// visibleWidth is the number of terminal cells s occupies, escape codes excluded.
func visibleWidth(s string) int { return runewidth.StringWidth(ansi.Strip(s)) }

// ProgressBar renders done/total as a bar of width cells and a percentage.
// A zero total draws an empty bar.
func ProgressBar(done, total, width int) string {
	total = max(total, 1)
	width = max(width, 5)
	ratio := float64(done) / float64(total)

	filled := min(int(ratio*float64(width)), width)
	var b strings.Builder
	b.WriteString(strings.Repeat("█", filled))
	b.WriteString(strings.Repeat("░", width-filled))
	fmt.Fprintf(&b, " %3d%%", int(ratio*100))
	return b.String()
}

// Panel frames lines in a box drawn with the current theme. Lines are padded
// to the widest one.
func Panel(w io.Writer, lines []string) {
	t := Current()
	inner := 0
	for _, ln := range lines {
		inner = max(inner, visibleWidth(ln))
	}

	edge := strings.Repeat(t.H, inner+2)
	fmt.Fprintln(w, t.CornerTL+edge+t.CornerTR)
	for _, ln := range lines {
		gap := strings.Repeat(" ", inner-visibleWidth(ln))
		fmt.Fprintln(w, t.V+" "+ln+gap+" "+t.V)
	}
	fmt.Fprintln(w, t.CornerBL+edge+t.CornerBR)
}

// Truncate shortens s to at most n cells, ending in "...".
func Truncate(s string, n int) string {
	if runewidth.StringWidth(s) <= n {
		return s
	}
	return runewidth.Truncate(s, n, "...")
}
