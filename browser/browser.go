// Package browser drives navigation: it resolves locations to markup, maps
// and renders the result, and keeps the back history.
package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/dustin/go-humanize"

	"tuibrowse/document"
	"tuibrowse/element"
	"tuibrowse/fetcher"
	"tuibrowse/html"
	"tuibrowse/lineedit"
	"tuibrowse/render"
	"tuibrowse/search"
	"tuibrowse/session"
)

const (
	Prompt  = "> "
	Welcome = "Welcome to the TUI Web Browser!\nCommands: go <url>, search <query>, back, quit"
	Usage   = "Unknown command. Commands: go <url>, search <query>, back, quit"
)

// PageFetcher retrieves HTML pages.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (*fetcher.FetchResult, error)
}

// LineReader supplies command lines to Run.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// Options configures a Browser. Nil fields get working defaults.
type Options struct {
	Out    io.Writer // rendered pages
	Status io.Writer // progress and command feedback
	Logger *log.Logger

	Pages  PageFetcher
	Images element.Fetcher
	Search search.Provider

	Mapping html.Options
	Aspect  float64

	// Spinner, when set, animates on Status while a page is fetched.
	Spinner *render.Spinner
}

// Browser is an interactive document viewer.
type Browser struct {
	out     io.Writer
	status  io.Writer
	log     *log.Logger
	pages   PageFetcher
	images  element.Fetcher
	search  search.Provider
	mapping html.Options
	aspect  float64
	spinner *render.Spinner
	history *session.History
}

// New creates a Browser with an empty history.
func New(o Options) *Browser {
	b := &Browser{
		out:     o.Out,
		status:  o.Status,
		log:     o.Logger,
		pages:   o.Pages,
		images:  o.Images,
		search:  o.Search,
		mapping: o.Mapping,
		aspect:  o.Aspect,
		spinner: o.Spinner,
		history: session.NewHistory(),
	}
	if b.out == nil {
		b.out = io.Discard
	}
	if b.status == nil {
		b.status = b.out
	}
	if b.log == nil {
		b.log = log.New(io.Discard, "", 0)
	}
	if b.pages == nil || b.images == nil {
		c := fetcher.New()
		if b.pages == nil {
			b.pages = c
		}
		if b.images == nil {
			b.images = c
		}
	}
	if b.search == nil {
		b.search = search.DefaultProvider()
	}
	return b
}

// History returns the navigation history.
func (b *Browser) History() *session.History { return b.history }

// Restore replaces the history with entries and shows the newest one.
func (b *Browser) Restore(ctx context.Context, entries []string) error {
	if len(entries) == 0 {
		return nil
	}
	b.history = session.NewHistory(entries...)
	cur, _ := b.history.Current()
	return b.show(ctx, cur)
}

// Navigate records loc in the history and shows it.
func (b *Browser) Navigate(ctx context.Context, loc string) error {
	b.history.Push(loc)
	return b.show(ctx, loc)
}

// Back returns to the previous page. With nothing to go back to it prints a
// notice and leaves the history as is.
func (b *Browser) Back(ctx context.Context) error {
	prev, ok := b.history.Back()
	if !ok {
		fmt.Fprintln(b.status, "No history to go back to.")
		return nil
	}
	return b.show(ctx, prev)
}

// Handle executes one command line and reports whether the user asked to
// quit.
func (b *Browser) Handle(ctx context.Context, input string) (quit bool) {
	input = strings.TrimSpace(input)

	var err error
	switch {
	case input == "quit":
		fmt.Fprintln(b.status, "Exiting browser.")
		return true
	case input == "back":
		err = b.Back(ctx)
	case strings.HasPrefix(input, "go "):
		err = b.Navigate(ctx, strings.TrimSpace(input[3:]))
	case strings.HasPrefix(input, "search "):
		err = b.Navigate(ctx, search.Locator(input[7:]))
	default:
		fmt.Fprintln(b.status, Usage)
	}
	if err != nil {
		b.log.Printf("render: %v", err)
	}
	return false
}

// Run prints the welcome text, shows start (the home page when empty) and
// then reads commands until quit, end of input or ctx is done.
func (b *Browser) Run(ctx context.Context, lines LineReader, start string) error {
	fmt.Fprintln(b.status, Welcome)
	if start == "" {
		start = HomePage
	}
	if b.history.Len() == 0 {
		if err := b.Navigate(ctx, start); err != nil {
			return err
		}
	}

	for ctx.Err() == nil {
		input, err := lines.Prompt(Prompt)
		if errors.Is(err, lineedit.ErrAborted) || errors.Is(err, io.EOF) {
			fmt.Fprintln(b.status, "Exiting browser.")
			return nil
		}
		if err != nil {
			return err
		}
		if b.Handle(ctx, input) {
			return nil
		}
	}
	return ctx.Err()
}

// Print renders loc once without clearing the screen or touching the
// history.
func (b *Browser) Print(ctx context.Context, loc string) error {
	return b.renderer(ctx).Render(b.Load(ctx, loc))
}

// show loads loc and repaints the screen with it.
func (b *Browser) show(ctx context.Context, loc string) error {
	return b.renderer(ctx).Refresh(b.Load(ctx, loc))
}

func (b *Browser) renderer(ctx context.Context) *document.Renderer {
	return document.NewRenderer(b.out,
		document.WithContext(ctx),
		document.WithFetcher(b.images),
		document.WithAspect(b.aspect),
	)
}

// Load resolves loc to a document. Failures are turned into error pages
// rather than returned.
func (b *Browser) Load(ctx context.Context, loc string) *html.Document {
	var markup, base string

	if page, ok := builtinPages[loc]; ok {
		markup = page
	} else if query, ok := search.ParseLocator(loc); ok {
		res, err := b.search.Search(query)
		if err != nil {
			b.log.Printf("An unexpected error occurred: %v", err)
			return html.UnexpectedErrorDocument(err)
		}
		markup = res.ToHTML()
	} else {
		url := fetcher.NormalizeURL(loc)
		fmt.Fprintf(b.status, "Fetching %s...\n", url)
		res, err := b.fetch(ctx, url)
		if err != nil {
			b.log.Printf("Error fetching %s: %v", url, err)
			return html.ErrorDocument(url, err)
		}
		fmt.Fprintf(b.status, "Successfully fetched %s (%s)\n", url, humanize.Bytes(uint64(res.Size)))
		markup = res.HTML
		base = fetcher.Origin(res.FinalURL, url)
	}

	opts := b.mapping
	opts.BaseURL = base
	doc, err := html.NewMapper(opts).Parse(strings.NewReader(markup))
	if err != nil {
		b.log.Printf("An unexpected error occurred: %v", err)
		return html.UnexpectedErrorDocument(err)
	}
	return doc
}

func (b *Browser) fetch(ctx context.Context, url string) (*fetcher.FetchResult, error) {
	if b.spinner != nil {
		stop := b.spinner.Start(b.status, url)
		defer stop()
	}
	return b.pages.FetchPage(ctx, url)
}
