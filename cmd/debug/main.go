// Debug tool to show the element tree a page maps to
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"tuibrowse/element"
	"tuibrowse/fetcher"
	"tuibrowse/html"
	"tuibrowse/render"
)

func main() {
	target := "https://example.com"
	if len(os.Args) > 1 {
		target = os.Args[1]
	}

	doc, err := load(target)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	fmt.Printf("Title: %q\n", doc.Title)
	fmt.Printf("Top-level elements: %d\n", len(doc.Elements))
	dump(doc.Elements, 0)
}

// load reads a local file when target exists on disk, otherwise fetches it.
func load(target string) (*html.Document, error) {
	if f, err := os.Open(target); err == nil {
		defer f.Close()
		return html.Parse(f)
	}

	url := fetcher.NormalizeURL(target)
	res, err := fetcher.New().FetchPage(context.Background(), url)
	if err != nil {
		return nil, err
	}
	return mapPage(res, url)
}

// mapPage maps a fetched page, resolving root-relative images against the
// page's origin.
func mapPage(res *fetcher.FetchResult, url string) (*html.Document, error) {
	m := html.NewMapper(html.Options{BaseURL: fetcher.Origin(res.FinalURL, url)})
	return m.Parse(strings.NewReader(res.HTML))
}

func dump(elements []element.Element, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, el := range elements {
		switch e := el.(type) {
		case element.Text:
			fmt.Printf("%s%s %q\n", indent, e.Kind(), render.Truncate(e.Text, 50))
		case element.Link:
			fmt.Printf("%s%s %q -> %s\n", indent, e.Kind(), e.Text, e.Href)
		case element.Heading:
			fmt.Printf("%s%s h%d %q\n", indent, e.Kind(), e.Level, e.Text)
		case element.Button:
			fmt.Printf("%s%s %q\n", indent, e.Kind(), e.Label)
		case element.Image:
			fmt.Printf("%s%s %s\n", indent, e.Kind(), e.URL())
		case element.Paragraph:
			fmt.Printf("%s%s\n", indent, e.Kind())
			dump(e.Parts, depth+1)
		case element.Container:
			fmt.Printf("%s%s (%d children)\n", indent, e.Kind(), len(e.Children))
			dump(e.Children, depth+1)
		case element.List:
			fmt.Printf("%s%s (%d items)\n", indent, e.Kind(), len(e.Items))
			for i, item := range e.Items {
				fmt.Printf("%s  [%d]\n", indent, i)
				dump(item, depth+2)
			}
		}
	}
}
