package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Panel writes lines inside the current theme's frame. Lines may already
// carry styling; widths are measured in display cells.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, current.Frame().Render(strings.Join(lines, "\n")))
}

// OK reports a finished action on w.
func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Success.Render(current.Check+" "+msg))
}

// Fail reports an error on w.
func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Error.Render(current.Cross+" "+msg))
}

// Truncate shortens s to max display cells, ending in "...".
func Truncate(s string, max int) string {
	if ansi.StringWidth(s) <= max {
		return s
	}
	return ansi.Truncate(s, max, "...")
}
