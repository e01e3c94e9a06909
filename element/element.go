// Package element defines the renderable content nodes of a document.
//
// The set of element kinds is closed: Text, Link, Paragraph, Heading, List,
// Button, Container and Image. Every kind renders itself to a styled text
// fragment. Image is the one kind that also writes to the terminal directly:
// its half-block art goes to Output.Direct and its returned fragment is empty
// unless rendering failed.
package element

import (
	"context"
	"io"
	"strings"

	"tuibrowse/render"
)

// Kind identifies the variant of an Element.
type Kind int

const (
	KindText Kind = iota
	KindLink
	KindParagraph
	KindHeading
	KindList
	KindButton
	KindContainer
	KindImage
)

var kindNames = [...]string{
	KindText:      "text",
	KindLink:      "link",
	KindParagraph: "paragraph",
	KindHeading:   "heading",
	KindList:      "list",
	KindButton:    "button",
	KindContainer: "container",
	KindImage:     "image",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Fetcher retrieves the raw bytes behind a locator.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// Output carries what a render pass may use beyond the element's own state:
// the direct terminal channel and the fetch collaborator for images.
// A nil *Output is valid; pure elements never look at it.
type Output struct {
	Ctx     context.Context
	Direct  io.Writer
	Fetcher Fetcher
	Aspect  float64 // character cell width/height; 0 means the default
}

func (o *Output) context() context.Context {
	if o == nil || o.Ctx == nil {
		return context.Background()
	}
	return o.Ctx
}

func (o *Output) direct() io.Writer {
	if o == nil || o.Direct == nil {
		return io.Discard
	}
	return o.Direct
}

// Element is a renderable content node.
type Element interface {
	Kind() Kind
	// Render returns the element's styled text fragment. Only Image writes
	// to out.Direct.
	Render(out *Output) string

	sealed()
}

// Text is a run of plain text.
type Text struct {
	Text string
}

// Link is hyperlink text with its target.
type Link struct {
	Text string
	Href string
}

// Paragraph holds inline elements (Text, Link, Image) followed by a line break.
type Paragraph struct {
	Parts []Element
}

// Heading is a section title. Levels 1 and 2 have their own colors; every
// other level uses the default heading style.
type Heading struct {
	Text  string
	Level int
}

// List is a bulleted list; each item is a sequence of inline elements.
type List struct {
	Items [][]Element
}

// Button is a labelled, inverse-styled token.
type Button struct {
	Label string
}

// Container groups block elements and pads them with blank lines.
type Container struct {
	Children []Element
}

func (Text) Kind() Kind      { return KindText }
func (Link) Kind() Kind      { return KindLink }
func (Paragraph) Kind() Kind { return KindParagraph }
func (Heading) Kind() Kind   { return KindHeading }
func (List) Kind() Kind      { return KindList }
func (Button) Kind() Kind    { return KindButton }
func (Container) Kind() Kind { return KindContainer }

func (Text) sealed()      {}
func (Link) sealed()      {}
func (Paragraph) sealed() {}
func (Heading) sealed()   {}
func (List) sealed()      {}
func (Button) sealed()    {}
func (Container) sealed() {}

func (t Text) Render(*Output) string { return t.Text }

func (l Link) Render(*Output) string {
	return " " + render.LinkStyle.Apply(l.Text) + " "
}

func (p Paragraph) Render(out *Output) string {
	return RenderAll(p.Parts, out) + "\n"
}

func (h Heading) Render(*Output) string {
	return "\n" + h.Style().Apply(strings.Repeat("#", max(h.Level, 1))+" "+h.Text) + "\n"
}

// Style returns the style selected by the heading level.
func (h Heading) Style() render.Style {
	switch h.Level {
	case 1:
		return render.Heading1
	case 2:
		return render.Heading2
	default:
		return render.HeadingOther
	}
}

func (l List) Render(out *Output) string {
	bullet := render.BulletStyle.Apply(string(render.Bullet))
	items := make([]string, len(l.Items))
	for i, parts := range l.Items {
		items[i] = bullet + " " + RenderAll(parts, out)
	}
	return strings.Join(items, "\n") + "\n"
}

func (b Button) Render(*Output) string {
	return " " + render.ButtonStyle.Apply("[ "+b.Label+" ]") + "\n"
}

func (c Container) Render(out *Output) string {
	return "\n\n" + strings.Trim(RenderAll(c.Children, out), "\n") + "\n\n"
}

// RenderAll renders elements in order and concatenates their fragments.
func RenderAll(elements []Element, out *Output) string {
	var sb strings.Builder
	for _, el := range elements {
		sb.WriteString(el.Render(out))
	}
	return sb.String()
}
