// Package halfblock renders raster images as true-color terminal art.
//
// Each output character cell covers two source pixel rows: the lower half
// block glyph is drawn in the bottom pixel's color over a background set to
// the top pixel's color. Terminal cells are assumed to be roughly twice as
// tall as they are wide, which the aspect ratio parameter captures.
package halfblock

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"tuibrowse/render"
)

// DefaultAspect is the width/height ratio of a terminal character cell.
const DefaultAspect = 0.5

// DefaultMaxWidth is the default output width in character cells.
const DefaultMaxWidth = 80

// MaxPixels caps the declared canvas size of an image accepted for decoding.
var MaxPixels = 8192 * 8192

var (
	// ErrDecode is returned when the bytes are not a supported raster format.
	ErrDecode = errors.New("halfblock: unsupported or corrupt image")
	// ErrEmptyImage is returned for images with zero width or height.
	ErrEmptyImage = errors.New("halfblock: image has no pixels")
	// ErrInvalidWidth is returned when the requested width is not positive.
	ErrInvalidWidth = errors.New("halfblock: max width must be positive")
)

// Lanczos is a three-lobe Lanczos resampling kernel.
var Lanczos = &xdraw.Kernel{
	Support: 3,
	At: func(t float64) float64 {
		if t < 0 {
			t = -t
		}
		if t >= 3 {
			return 0
		}
		return sinc(t) * sinc(t/3)
	},
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	x *= math.Pi
	return math.Sin(x) / x
}

// Rasterize decodes data and renders it at most maxWidth cells wide using
// DefaultAspect.
func Rasterize(data []byte, maxWidth int) ([]string, error) {
	return RasterizeAspect(data, maxWidth, DefaultAspect)
}

// RasterizeAspect is Rasterize with an explicit character aspect ratio.
func RasterizeAspect(data []byte, maxWidth int, aspect float64) ([]string, error) {
	if maxWidth <= 0 {
		return nil, ErrInvalidWidth
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrEmptyImage
	}
	if cfg.Width > MaxPixels/cfg.Height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrDecode, cfg.Width, cfg.Height, MaxPixels)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return RasterizeImage(img, maxWidth, aspect)
}

// RasterizeImage renders an already decoded image. It returns one escape
// coded line per pair of resampled pixel rows.
func RasterizeImage(img image.Image, maxWidth int, aspect float64) ([]string, error) {
	if maxWidth <= 0 {
		return nil, ErrInvalidWidth
	}
	if aspect <= 0 {
		aspect = DefaultAspect
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyImage
	}

	pw, ph := TargetSize(b.Dx(), b.Dy(), maxWidth, aspect)
	dst := image.NewRGBA(image.Rect(0, 0, pw, ph))
	Lanczos.Scale(dst, dst.Bounds(), opaque(img), b, xdraw.Src, nil)

	return encode(dst), nil
}

// TargetSize computes the resampled pixel dimensions for an image of w x h
// pixels rendered at most maxWidth cells wide. The returned height is always
// even and at least 2; the width is at least 1 and never exceeds maxWidth.
func TargetSize(w, h, maxWidth int, aspect float64) (pw, ph int) {
	if w <= 0 || h <= 0 || maxWidth <= 0 {
		return 0, 0
	}

	rows := CharHeight(w, h, maxWidth, aspect)
	ph = rows * 2
	pw = round(float64(w) * float64(ph) / float64(h))

	if pw > maxWidth {
		pw = maxWidth
		ph = evenUp(max(round(float64(h)*float64(maxWidth)/float64(w)), 1))
	}
	return max(pw, 1), ph
}

// CharHeight returns the target height in character rows before the width
// constraint is applied: round(h/w * maxWidth * aspect), at least 1, rounded
// up to even.
func CharHeight(w, h, maxWidth int, aspect float64) int {
	if w <= 0 || h <= 0 {
		return 0
	}
	rows := round(float64(h) / float64(w) * float64(maxWidth) * aspect)
	return evenUp(max(rows, 1))
}

// opaque copies img into an RGBA image keeping the straight (unpremultiplied)
// color channels and forcing alpha to 255. Transparency is discarded, not
// composited.
func opaque(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			dst.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return dst
}

func round(f float64) int {
	return int(math.Round(f))
}

func evenUp(n int) int {
	return n + n%2
}

func encode(img *image.RGBA) []string {
	b := img.Bounds()
	lines := make([]string, 0, (b.Dy()+1)/2)

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		bottom := min(y+1, b.Max.Y-1)
		sb.Reset()
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.RGBAAt(x, y)
			bot := img.RGBAAt(x, bottom)
			sb.WriteString(render.Color{R: bot.R, G: bot.G, B: bot.B}.Fg())
			sb.WriteString(render.Color{R: top.R, G: top.G, B: top.B}.Bg())
			sb.WriteRune(render.HalfBlock)
		}
		sb.WriteString(render.Reset)
		lines = append(lines, sb.String())
	}
	return lines
}
