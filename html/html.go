// Package html maps parsed HTML into renderable document elements.
//
// Parsing itself is delegated to golang.org/x/net/html; this package only
// walks the resulting tree, applies per-tag construction rules and filters
// noise (comments, scripts, styles, leftovers of conditional comments).
package html

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"tuibrowse/element"
)

// DefaultTitle is used when a document has no <title>.
const DefaultTitle = "No Title"

// DefaultMaxDepth bounds how deep the block walk descends. Subtrees below
// the limit are flattened to their text.
const DefaultMaxDepth = 256

// ErrMalformedMarkup wraps failures reported by the HTML parser.
var ErrMalformedMarkup = errors.New("malformed markup")

// Document is the mapped form of an HTML page. It is built once and not
// modified afterwards.
type Document struct {
	Title    string
	Elements []element.Element
}

// Options configures element construction.
type Options struct {
	BaseURL    string // resolves root-relative image sources
	ImageWidth int    // max image width in cells
	MaxDepth   int
}

// DefaultOptions returns the mapping defaults.
func DefaultOptions() Options {
	return Options{
		ImageWidth: 80,
		MaxDepth:   DefaultMaxDepth,
	}
}

// Mapper converts parsed HTML trees into Documents.
type Mapper struct {
	opts Options
}

// NewMapper returns a Mapper; zero fields in o fall back to the defaults.
func NewMapper(o Options) *Mapper {
	d := DefaultOptions()
	if o.ImageWidth <= 0 {
		o.ImageWidth = d.ImageWidth
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = d.MaxDepth
	}
	return &Mapper{opts: o}
}

// Parse parses HTML from r and maps it with the default options.
func Parse(r io.Reader) (*Document, error) {
	return NewMapper(DefaultOptions()).Parse(r)
}

// ParseString parses HTML from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Map maps an already parsed tree with the default options.
func Map(root *html.Node) *Document {
	return NewMapper(DefaultOptions()).Map(root)
}

// Parse parses HTML from r and maps it.
func (m *Mapper) Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMarkup, err)
	}
	return m.Map(root), nil
}

// Map maps a parsed tree. Traversal starts at the <html> element when
// there is one, otherwise at root.
func (m *Mapper) Map(root *html.Node) *Document {
	if root == nil {
		return &Document{Title: DefaultTitle}
	}

	sel := goquery.NewDocumentFromNode(root)

	title := DefaultTitle
	if t := sel.Find("title").First(); t.Length() > 0 {
		title = normalizeSpace(t.Text())
	}

	anchor := root
	if h := sel.Find("html").First(); h.Length() > 0 {
		anchor = h.Get(0)
	}

	return &Document{
		Title:    title,
		Elements: m.block(anchor, 0),
	}
}

// block maps a node at block level. It yields zero or more elements.
func (m *Mapper) block(n *html.Node, depth int) []element.Element {
	switch n.Type {
	case html.TextNode:
		if text := normalizeSpace(n.Data); text != "" {
			return []element.Element{element.Text{Text: text}}
		}
		return nil
	case html.ElementNode, html.DocumentNode:
	default:
		// comments, doctypes, parser error nodes
		return nil
	}

	tag := strings.ToLower(n.Data)
	switch tag {
	case "h1", "h2", "h3":
		return []element.Element{element.Heading{Text: textContent(n), Level: int(tag[1] - '0')}}

	case "p":
		return []element.Element{element.Paragraph{Parts: m.inline(n)}}

	case "ul":
		var items [][]element.Element
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && strings.EqualFold(c.Data, "li") {
				items = append(items, m.inline(c))
			}
		}
		return []element.Element{element.List{Items: items}}

	case "a":
		if link, ok := m.link(n); ok {
			return []element.Element{link}
		}
		return nil

	case "button":
		return []element.Element{element.Button{Label: textContent(n)}}

	case "img":
		if img, ok := m.image(n); ok {
			return []element.Element{img}
		}
		return nil

	case "script", "style", "noscript", "title":
		return nil
	}

	// Containers and unknown tags contribute their children's elements,
	// or their text when the children produce nothing.
	var elements []element.Element
	if depth < m.opts.MaxDepth {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			elements = append(elements, m.block(c, depth+1)...)
		}
	}
	if len(elements) == 0 {
		if text := textContent(n); text != "" {
			return []element.Element{element.Text{Text: text}}
		}
	}
	return elements
}

// inline maps the children of a paragraph or list item. Only links and
// images keep their structure; any other tag collapses to its text.
func (m *Mapper) inline(parent *html.Node) []element.Element {
	var parts []element.Element
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			text := normalizeSpace(c.Data)
			if text != "" && !IsConditionalNoise(text) {
				parts = append(parts, element.Text{Text: text})
			}

		case html.ElementNode:
			switch strings.ToLower(c.Data) {
			case "script", "style", "noscript":
			case "a":
				if link, ok := m.link(c); ok {
					parts = append(parts, link)
				}
			case "img":
				if img, ok := m.image(c); ok {
					parts = append(parts, img)
				}
			default:
				if text := textContent(c); text != "" {
					parts = append(parts, element.Text{Text: text})
				}
			}
		}
	}
	return parts
}

func (m *Mapper) link(n *html.Node) (element.Link, bool) {
	text := textContent(n)
	if text == "" {
		return element.Link{}, false
	}
	href, ok := getAttr(n, "href")
	if !ok {
		href = "#"
	}
	return element.Link{Text: text, Href: href}, true
}

func (m *Mapper) image(n *html.Node) (element.Image, bool) {
	src, ok := getAttr(n, "src")
	if !ok {
		return element.Image{}, false
	}
	return element.Image{Src: src, Base: m.opts.BaseURL, MaxWidth: m.opts.ImageWidth}, true
}

// IsConditionalNoise reports whether text looks like the remains of an IE
// conditional comment ("<!--[if IE]>", "<![endif]-->"). Legitimate text
// containing these substrings is dropped as well.
func IsConditionalNoise(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "endif") ||
		strings.Contains(lower, "[if") ||
		strings.Contains(text, "<!")
}

// textContent returns the whitespace-normalized text below n, skipping
// comments and the bodies of script, style, noscript and title. It walks
// with an explicit stack so arbitrarily deep trees are safe.
func textContent(n *html.Node) string {
	var sb strings.Builder
	stack := []*html.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch cur.Type {
		case html.TextNode:
			sb.WriteString(cur.Data)
			continue
		case html.ElementNode:
			if isHidden(cur) {
				continue
			}
		case html.DocumentNode:
		default:
			continue
		}

		// Push children in reverse so they pop in document order.
		for c := cur.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return normalizeSpace(sb.String())
}

func isHidden(n *html.Node) bool {
	switch strings.ToLower(n.Data) {
	case "script", "style", "noscript", "title":
		return true
	}
	return false
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val, true
		}
	}
	return "", false
}
