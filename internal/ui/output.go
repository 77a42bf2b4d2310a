package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Stdout and Stderr are swapped out by tests.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

func OK(msg string)   { fmt.Fprintln(Stdout, current.Success.Render("✔ "+msg)) }
func Fail(msg string) { fmt.Fprintln(Stderr, current.Error.Render("✖ "+msg)) }

// Panel prints lines inside the theme's box.
func Panel(lines []string) {
	fmt.Fprintln(Stdout, current.Box().Render(strings.Join(lines, "\n")))
}

// Preview flattens s to one line and cuts it to at most width runes,
// ending with "..." when shortened.
func Preview(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 3 {
		width = 3
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
