// Package document writes mapped HTML documents to the terminal.
package document

import (
	"context"
	"io"
	"strings"

	"tuibrowse/element"
	"tuibrowse/html"
	"tuibrowse/render"
)

// Renderer prints documents to a writer. Elements are written in order with
// no separators; each element supplies its own line breaks.
type Renderer struct {
	w       io.Writer
	ctx     context.Context
	fetcher element.Fetcher
	aspect  float64
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFetcher sets the fetcher used by image elements.
func WithFetcher(f element.Fetcher) Option {
	return func(r *Renderer) { r.fetcher = f }
}

// WithContext sets the context passed to image fetches.
func WithContext(ctx context.Context) Option {
	return func(r *Renderer) { r.ctx = ctx }
}

// WithAspect sets the character cell aspect ratio used for images.
func WithAspect(aspect float64) Option {
	return func(r *Renderer) { r.aspect = aspect }
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{w: w, ctx: context.Background()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render prints the title banner (when the title is not empty) followed by
// every element of doc.
func (r *Renderer) Render(doc *html.Document) error {
	if doc == nil {
		return nil
	}
	ew := &errWriter{w: r.w}

	if doc.Title != "" {
		io.WriteString(ew, Banner(doc.Title))
	}

	out := &element.Output{
		Ctx:     r.ctx,
		Direct:  ew,
		Fetcher: r.fetcher,
		Aspect:  r.aspect,
	}
	for _, el := range doc.Elements {
		if ew.err != nil {
			break
		}
		io.WriteString(ew, el.Render(out))
	}
	return ew.err
}

// Refresh clears the terminal and renders doc.
func (r *Renderer) Refresh(doc *html.Document) error {
	if err := render.ClearTo(r.w); err != nil {
		return err
	}
	return r.Render(doc)
}

// Banner returns the framed title block printed above a document:
//
//	=============
//	=== Title ===
//	=============
func Banner(title string) string {
	rule := render.Rule('=', render.StringWidth(title)+6)
	var sb strings.Builder
	sb.WriteString(render.BannerStyle.Sequence())
	sb.WriteString(rule)
	sb.WriteString("\n=== ")
	sb.WriteString(title)
	sb.WriteString(" ===\n")
	sb.WriteString(rule)
	sb.WriteString(render.Reset)
	sb.WriteString("\n\n")
	return sb.String()
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
