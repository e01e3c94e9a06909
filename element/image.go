package element

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"tuibrowse/halfblock"
)

// ErrNoFetcher is reported when an image is rendered without a fetcher.
var ErrNoFetcher = errors.New("no fetcher available")

// Image references a raster image to be drawn as half-block art.
type Image struct {
	Src      string
	Base     string // resolves root-relative Src; may be empty
	MaxWidth int    // in character cells; 0 means halfblock.DefaultMaxWidth
}

func (Image) Kind() Kind { return KindImage }
func (Image) sealed()    {}

// URL returns the locator to fetch. A root-relative Src is joined to Base.
func (i Image) URL() string {
	if strings.HasPrefix(i.Src, "/") && i.Base != "" {
		return strings.TrimRight(i.Base, "/") + i.Src
	}
	return i.Src
}

// Render fetches and rasterizes the image, writing the art and a caption
// to out.Direct. It returns an empty fragment on success and an inline
// error marker otherwise.
func (i Image) Render(out *Output) string {
	url := i.URL()
	if err := i.draw(out, url); err != nil {
		return fmt.Sprintf("\n[Error rendering image %s: %v]\n", i.Src, err)
	}
	return ""
}

func (i Image) draw(out *Output, url string) error {
	if out == nil || out.Fetcher == nil {
		return ErrNoFetcher
	}
	data, err := out.Fetcher.Fetch(out.context(), url)
	if err != nil {
		return err
	}

	width := i.MaxWidth
	if width <= 0 {
		width = halfblock.DefaultMaxWidth
	}
	aspect := out.Aspect
	if aspect <= 0 {
		aspect = halfblock.DefaultAspect
	}
	lines, err := halfblock.RasterizeAspect(data, width, aspect)
	if err != nil {
		return err
	}

	w := out.direct()
	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\n[Image: %s]\n\n", url)
	return err
}
