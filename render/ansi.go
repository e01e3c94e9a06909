package render

import (
	"strconv"
	"strings"
)

// Fixed escape palette. Every sequence is independent and composes by
// concatenation; Reset restores the terminal defaults.
const (
	Reset     = "\x1b[0m"
	Bold      = "\x1b[1m"
	Underline = "\x1b[4m"

	BlackFg  = "\x1b[30m"
	RedFg    = "\x1b[31m"
	GreenFg  = "\x1b[32m"
	YellowFg = "\x1b[33m"
	BlueFg   = "\x1b[34m"
	CyanFg   = "\x1b[36m"
	WhiteBg  = "\x1b[47m"

	// ClearTerminal is the full terminal reset (RIS).
	ClearTerminal = "\x1bc"
)

// Glyphs used by the renderers.
const (
	HalfBlock = '▄' // lower half block
	Bullet    = '•'
)

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Fg returns the truecolor foreground sequence for r, g, b.
func Fg(r, g, b uint8) string {
	return rgbSequence("38", r, g, b)
}

// Bg returns the truecolor background sequence for r, g, b.
func Bg(r, g, b uint8) string {
	return rgbSequence("48", r, g, b)
}

// Fg returns the truecolor foreground sequence for c.
func (c Color) Fg() string { return Fg(c.R, c.G, c.B) }

// Bg returns the truecolor background sequence for c.
func (c Color) Bg() string { return Bg(c.R, c.G, c.B) }

func rgbSequence(layer string, r, g, b uint8) string {
	buf := make([]byte, 0, 19)
	buf = append(buf, "\x1b["...)
	buf = append(buf, layer...)
	buf = append(buf, ";2;"...)
	buf = strconv.AppendUint(buf, uint64(r), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(g), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(b), 10)
	buf = append(buf, 'm')
	return string(buf)
}

// Style is an ordered run of palette sequences. Codes are emitted in the
// order given, so a style reproduces the palette bytes exactly.
type Style struct {
	seq string
}

// NewStyle combines palette codes into a style.
func NewStyle(codes ...string) Style {
	return Style{seq: strings.Join(codes, "")}
}

// Named styles used for document elements.
var (
	LinkStyle    = NewStyle(BlueFg, Underline)
	BulletStyle  = NewStyle(CyanFg)
	ButtonStyle  = NewStyle(BlackFg, WhiteBg, Bold)
	BannerStyle  = NewStyle(Bold, CyanFg)
	Heading1     = NewStyle(Bold, BlueFg)
	Heading2     = NewStyle(Bold, GreenFg)
	HeadingOther = NewStyle(Bold, YellowFg)
)

// Sequence returns the escape sequence that switches the terminal to s.
// The zero Style yields an empty string.
func (s Style) Sequence() string { return s.seq }

// Apply wraps text in the style's sequence and a trailing Reset.
func (s Style) Apply(text string) string {
	if s.seq == "" {
		return text
	}
	return s.seq + text + Reset
}
