package element

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuibrowse/render"
)

func TestRenderPureElements(t *testing.T) {
	tests := []struct {
		name     string
		el       Element
		expected string
	}{
		{"text", Text{Text: "Hi"}, "Hi"},
		{"link", Link{Text: "there", Href: "x"}, " " + render.BlueFg + render.Underline + "there" + render.Reset + " "},
		{"paragraph", Paragraph{Parts: []Element{Text{Text: "a"}, Text{Text: "b"}}}, "ab\n"},
		{"heading 1", Heading{Text: "Title", Level: 1}, "\n" + render.Bold + render.BlueFg + "# Title" + render.Reset + "\n"},
		{"heading 2", Heading{Text: "Sub", Level: 2}, "\n" + render.Bold + render.GreenFg + "## Sub" + render.Reset + "\n"},
		{"heading 3", Heading{Text: "Min", Level: 3}, "\n" + render.Bold + render.YellowFg + "### Min" + render.Reset + "\n"},
		{"button", Button{Label: "Go"}, " " + render.BlackFg + render.WhiteBg + render.Bold + "[ Go ]" + render.Reset + "\n"},
		{"empty container", Container{}, "\n\n\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.el.Render(nil); got != tt.expected {
				t.Errorf("got %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestHeadingOutOfRangeLevel(t *testing.T) {
	got := Heading{Text: "Deep", Level: 5}.Render(nil)
	assert.Equal(t, "\n"+render.Bold+render.YellowFg+"##### Deep"+render.Reset+"\n", got)

	got = Heading{Text: "Zero", Level: 0}.Render(nil)
	assert.Equal(t, "# Zero", render.StripANSI(strings.TrimSpace(got)))
}

func TestListRender(t *testing.T) {
	l := List{Items: [][]Element{
		{Text{Text: "One"}},
		{Text{Text: "Two"}, Link{Text: "more", Href: "/m"}},
	}}
	got := render.StripANSI(l.Render(nil))
	assert.Equal(t, "• One\n• Two more \n", got)
}

func TestContainerTrimsEdges(t *testing.T) {
	c := Container{Children: []Element{
		Heading{Text: "H", Level: 2},
		Paragraph{Parts: []Element{Text{Text: "body"}}},
	}}
	got := render.StripANSI(c.Render(nil))
	assert.Equal(t, "\n\n## H\nbody\n\n", got)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "paragraph", Paragraph{}.Kind().String())
	assert.Equal(t, "image", Image{}.Kind().String())
	assert.Equal(t, "unknown", Kind(42).String())
}

type fakeFetcher struct {
	data map[string][]byte
	err  error
	got  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, locator string) ([]byte, error) {
	f.got = append(f.got, locator)
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.data[locator]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		img      Image
		expected string
	}{
		{Image{Src: "pic.png"}, "pic.png"},
		{Image{Src: "/pic.png"}, "/pic.png"},
		{Image{Src: "/pic.png", Base: "https://example.com/"}, "https://example.com/pic.png"},
		{Image{Src: "pic.png", Base: "https://example.com"}, "pic.png"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.img.URL())
		})
	}
}

func TestImageRenderWritesDirect(t *testing.T) {
	f := &fakeFetcher{data: map[string][]byte{
		"https://example.com/a.png": pngBytes(t, 20, 10),
	}}
	var direct bytes.Buffer
	out := &Output{Direct: &direct, Fetcher: f}

	frag := Image{Src: "/a.png", Base: "https://example.com", MaxWidth: 20}.Render(out)
	assert.Empty(t, frag)
	assert.Equal(t, []string{"https://example.com/a.png"}, f.got)

	written := direct.String()
	assert.Contains(t, written, "▄")
	assert.True(t, strings.HasSuffix(written, "\n[Image: https://example.com/a.png]\n\n"))
	// 20x10 at 20 cells is width-bound: 20x10 pixels, 5 rows.
	art := strings.TrimSuffix(written, "\n\n[Image: https://example.com/a.png]\n\n")
	assert.Len(t, strings.Split(art, "\n"), 5)
}

func TestImageRenderFailuresBecomeMarkers(t *testing.T) {
	tests := []struct {
		name string
		out  *Output
		want string
	}{
		{"no output", nil, "no fetcher available"},
		{"fetch error", &Output{Fetcher: &fakeFetcher{err: errors.New("boom")}}, "boom"},
		{"decode error", &Output{Fetcher: &fakeFetcher{data: map[string][]byte{"x.png": []byte("junk")}}}, "unsupported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag := Image{Src: "x.png"}.Render(tt.out)
			assert.True(t, strings.HasPrefix(frag, "\n[Error rendering image x.png: "), frag)
			assert.Contains(t, frag, tt.want)
		})
	}
}

func TestRenderAllKeepsOrder(t *testing.T) {
	els := []Element{Text{Text: "a"}, Image{Src: "missing"}, Text{Text: "b"}}
	got := RenderAll(els, &Output{Fetcher: &fakeFetcher{}})
	assert.True(t, strings.HasPrefix(got, "a\n[Error rendering image missing"))
	assert.True(t, strings.HasSuffix(got, "]\nb"))
}

func TestInlineImageArtPrecedesEnclosingText(t *testing.T) {
	f := &fakeFetcher{data: map[string][]byte{"x.png": pngBytes(t, 2, 2)}}
	var direct bytes.Buffer
	p := Paragraph{Parts: []Element{Text{Text: "BEFORE"}, Image{Src: "x.png", MaxWidth: 2}, Text{Text: "AFTER"}}}

	frag := p.Render(&Output{Direct: &direct, Fetcher: f})

	// The art is written while the paragraph is still being assembled, so
	// it reaches the terminal ahead of the paragraph's own text.
	assert.Equal(t, "BEFOREAFTER\n", frag)
	assert.True(t, strings.HasSuffix(direct.String(), "\n[Image: x.png]\n\n"))
}
