package cli

import (
	"os"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// fallbackWidth is used when stdout is not a terminal.
const fallbackWidth = 100

// terminalWidth returns the usable output width.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return fallbackWidth
}

// truncateCell shortens a value to the given display width.
func truncateCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
