// Package render provides terminal styling primitives: 24-bit color escape
// sequences, a small fixed palette of named styles, and display-width helpers.
package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// StringWidth returns the display width of a string in terminal cells.
// Escape sequences are not counted.
func StringWidth(s string) int {
	return runewidth.StringWidth(StripANSI(s))
}

// TruncateToWidth truncates a string to fit within the specified width.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, "")
}

// Truncate truncates a string adding ellipsis if needed.
func Truncate(s string, width int) string {
	if StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return TruncateToWidth(s, width)
	}
	return runewidth.Truncate(s, width, "...")
}

// Rule returns a horizontal rule of r repeated to fill width cells.
func Rule(r rune, width int) string {
	if width <= 0 {
		return ""
	}
	if rw := runewidth.RuneWidth(r); rw > 1 {
		width /= rw
	}
	return strings.Repeat(string(r), width)
}

// StripANSI removes ANSI escape sequences from a string.
// Handles CSI sequences (ESC [ ... final) and two-byte escapes such as ESC c.
func StripANSI(s string) string {
	var sb strings.Builder
	inEscape := false
	inCSI := false

	for _, r := range s {
		if r == '\033' {
			inEscape = true
			inCSI = false
			continue
		}
		if inEscape {
			if !inCSI && r == '[' {
				inCSI = true
				continue
			}
			if !inCSI || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
				inCSI = false
			}
			continue
		}
		sb.WriteRune(r)
	}

	return sb.String()
}
