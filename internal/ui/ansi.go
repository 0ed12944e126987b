package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// SGR sequences used by the themes.
const (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgGray    = "\033[90m"
	fgGreen   = "\033[32m"
	fgYellow  = "\033[33m"
	fgBlue    = "\033[34m"
	fgRed     = "\033[31m"
	fgMagenta = "\033[95m"
	fgCyan    = "\033[96m"
	fgAmber   = "\033[93m"

	symCross = "✖"
)

var (
	forceColor   bool
	disableColor bool
)

// SetColorForcing overrides terminal detection. disable wins over force.
func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

// colorEnabled honors NO_COLOR (https://no-color.org) unless colors are forced.
func colorEnabled() bool {
	switch {
	case disableColor:
		return false
	case forceColor:
		return true
	case os.Getenv("NO_COLOR") != "":
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// C wraps s in color when stdout is a terminal (or colors are forced).
func C(color, s string) string {
	if color == "" || !colorEnabled() {
		return s
	}
	return color + s + reset
}

// Dim renders s faint, for indexes and hints.
func Dim(s string) string { return C(dim, s) }

// OK prints a success line with the theme's done symbol.
func OK(w io.Writer, msg string) { fmt.Fprintln(w, C(current.Success, current.SymDone+" "+msg)) }

// Fail prints an error line.
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, C(current.Error, symCross+" "+msg)) }
