package ui

import (
	"sort"
	"strings"
)

// Theme is a palette plus the symbols and box characters renderers use.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending string

	BoxUnchecked, BoxChecked               string
	CornerTL, CornerTR, CornerBL, CornerBR string
	H, V                                   string
	SymDone, SymUnchecked                  string

	// NoColor turns colors off for as long as the theme is selected.
	NoColor bool
}

var themes = map[string]Theme{
	"classic": {
		Name:  "classic",
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Pending: fgYellow,
		BoxUnchecked: "☐", BoxChecked: "☑",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		SymDone: "✔", SymUnchecked: "•",
	},
	"neon": {
		Name:  "neon",
		Title: fgMagenta, Muted: fgGray, Accent: fgCyan,
		Success: fgGreen, Error: fgRed, Pending: fgAmber,
		BoxUnchecked: "◻", BoxChecked: "◼",
		CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
		H: "─", V: "│",
		SymDone: "✔", SymUnchecked: "•",
	},
	// plain ASCII for logs, pipes and dumb terminals
	"mono": {
		Name:         "mono",
		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
		H: "-", V: "|",
		SymDone: "x", SymUnchecked: "-",
		NoColor: true,
	},
}

var current = themes["classic"]

// SetTheme selects a theme by name. Unknown names select classic. Colors are
// on or off as the selected theme says.
func SetTheme(name string) {
	t, ok := themes[strings.ToLower(name)]
	if !ok {
		t = themes["classic"]
	}
	current = t
	disableColor = t.NoColor
}

// Themes lists the known theme names.
func Themes() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Current is the selected theme.
func Current() Theme { return current }
