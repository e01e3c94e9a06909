package render

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

// TerminalSize returns the current terminal dimensions.
func TerminalSize() (width, height int, err error) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width for w, or DefaultWidth when w is not a
// terminal or its size cannot be read.
func Width(w io.Writer) int {
	if !IsTerminal(w) {
		return DefaultWidth
	}
	cols, _, err := TerminalSize()
	if err != nil || cols <= 0 {
		return DefaultWidth
	}
	return cols
}

// ClearTo writes the full terminal reset to w.
func ClearTo(w io.Writer) error {
	_, err := io.WriteString(w, ClearTerminal)
	return err
}
