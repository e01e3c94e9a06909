package document

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"tuibrowse/element"
	"tuibrowse/html"
	"tuibrowse/render"
)

func TestBanner(t *testing.T) {
	got := render.StripANSI(Banner("Hi"))
	expected := "========\n=== Hi ===\n========\n\n"
	if got != expected {
		t.Errorf("got %q, expected %q", got, expected)
	}

	if !strings.HasPrefix(Banner("x"), render.Bold+render.CyanFg) {
		t.Error("banner should start bold cyan")
	}
}

func TestBannerWideTitle(t *testing.T) {
	lines := strings.Split(render.StripANSI(Banner("日本")), "\n")
	if len(lines[0]) != 10 {
		t.Errorf("rule should match display width 4+6, got %d", len(lines[0]))
	}
}

func TestRender(t *testing.T) {
	doc := &html.Document{
		Title: "T",
		Elements: []element.Element{
			element.Heading{Text: "Head", Level: 1},
			element.Paragraph{Parts: []element.Element{element.Text{Text: "Hi"}, element.Link{Text: "there", Href: "x"}}},
			element.List{Items: [][]element.Element{{element.Text{Text: "One"}}}},
		},
	}

	var buf bytes.Buffer
	if err := NewRenderer(&buf).Render(doc); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	got := render.StripANSI(buf.String())
	expected := "=======\n=== T ===\n=======\n\n" +
		"\n# Head\n" +
		"Hi there \n" +
		"• One\n"
	if got != expected {
		t.Errorf("got %q\nexpected %q", got, expected)
	}
}

func TestRenderNoTitle(t *testing.T) {
	var buf bytes.Buffer
	doc := &html.Document{Elements: []element.Element{element.Text{Text: "plain"}}}
	if err := NewRenderer(&buf).Render(doc); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "plain" {
		t.Errorf("got %q", buf.String())
	}
}

func TestRefreshClearsFirst(t *testing.T) {
	var buf bytes.Buffer
	doc := &html.Document{Elements: []element.Element{element.Text{Text: "x"}}}
	if err := NewRenderer(&buf).Refresh(doc); err != nil {
		t.Fatal(err)
	}
	if buf.String() != render.ClearTerminal+"x" {
		t.Errorf("got %q", buf.String())
	}
}

type stubFetcher map[string][]byte

func (s stubFetcher) Fetch(_ context.Context, locator string) ([]byte, error) {
	if data, ok := s[locator]; ok {
		return data, nil
	}
	return nil, errors.New("404")
}

func TestRenderImageInline(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetRGBA(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatal(err)
	}

	doc := &html.Document{Elements: []element.Element{
		element.Text{Text: "before\n"},
		element.Image{Src: "/i.png", Base: "http://h", MaxWidth: 4},
		element.Image{Src: "missing.png"},
		element.Text{Text: "after"},
	}}

	var buf bytes.Buffer
	r := NewRenderer(&buf, WithFetcher(stubFetcher{"http://h/i.png": pngBuf.Bytes()}))
	if err := r.Render(doc); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	art := strings.Index(got, "▄")
	caption := strings.Index(got, "[Image: http://h/i.png]")
	failure := strings.Index(got, "[Error rendering image missing.png: 404]")
	after := strings.Index(got, "after")

	if !(strings.HasPrefix(got, "before\n") && art > 0 && caption > art && failure > caption && after > failure) {
		t.Errorf("output out of order: %q", got)
	}
}

type failingWriter struct{ n int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.n++
	return 0, errors.New("closed")
}

func TestRenderReportsWriteError(t *testing.T) {
	w := &failingWriter{}
	doc := &html.Document{Title: "T", Elements: []element.Element{element.Text{Text: "a"}, element.Text{Text: "b"}}}
	if err := NewRenderer(w).Render(doc); err == nil {
		t.Fatal("expected error")
	}
	if w.n != 1 {
		t.Errorf("expected writes to stop after the first failure, got %d", w.n)
	}
}
