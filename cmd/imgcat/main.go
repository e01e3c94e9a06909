// Command imgcat prints image files as truecolor half-block art.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"tuibrowse/halfblock"
	"tuibrowse/render"
)

func main() {
	width := flag.Int("w", 0, "maximum width in cells (default: terminal width)")
	aspect := flag.Float64("aspect", halfblock.DefaultAspect, "character cell width/height")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: imgcat [-w width] [-aspect ratio] file...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("imgcat: ")

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	maxWidth := *width
	if maxWidth <= 0 {
		maxWidth = render.Width(os.Stdout)
	}

	failed := false
	for _, path := range flag.Args() {
		if err := cat(path, maxWidth, *aspect); err != nil {
			log.Printf("%s: %v", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func cat(path string, maxWidth int, aspect float64) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	lines, err := halfblock.RasterizeAspect(data, maxWidth, aspect)
	if err != nil {
		return err
	}
	fmt.Println(strings.Join(lines, "\n"))
	return nil
}
