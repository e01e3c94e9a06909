package main

import (
	"testing"

	"tuibrowse/element"
	"tuibrowse/fetcher"
)

func TestMapPageResolvesAgainstOrigin(t *testing.T) {
	res := &fetcher.FetchResult{
		HTML:     `<p>x</p><img src="/logo.png">`,
		FinalURL: "https://example.com/docs/page/index.html",
	}

	doc, err := mapPage(res, "https://example.com/docs/page/")
	if err != nil {
		t.Fatalf("mapPage failed: %v", err)
	}

	var img element.Image
	found := false
	for _, el := range doc.Elements {
		if i, ok := el.(element.Image); ok {
			img, found = i, true
		}
	}
	if !found {
		t.Fatalf("no image in %#v", doc.Elements)
	}
	if got := img.URL(); got != "https://example.com/logo.png" {
		t.Errorf("got %q, expected %q", got, "https://example.com/logo.png")
	}
}
