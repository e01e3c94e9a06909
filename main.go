// Tuibrowse is a terminal document browser that renders pages as styled
// text and images as truecolor half-block art.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"

	"tuibrowse/browser"
	"tuibrowse/config"
	"tuibrowse/fetcher"
	"tuibrowse/html"
	"tuibrowse/lineedit"
	"tuibrowse/render"
	"tuibrowse/session"
)

func main() {
	log.SetFlags(0)

	url := ""
	printMode := false
	initConfig := false

	for _, arg := range os.Args[1:] {
		switch arg {
		case "-p", "--print":
			printMode = true
		case "--init-config":
			initConfig = true
		case "-h", "--help":
			printUsage()
			return
		default:
			if url == "" {
				url = arg
			}
		}
	}

	// Generate default config and exit
	if initConfig {
		fmt.Print(config.DefaultTOML())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, config.FormatError(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if printMode {
		err = runPrint(ctx, cfg, url)
	} else {
		err = run(ctx, cfg, url)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Tuibrowse - Terminal Document Browser

Usage: tuibrowse [options] [url]

Options:
  -p, --print       Print page to stdout (one-shot mode)
  --init-config     Output default config (redirect to ~/.config/tuibrowse/config.toml)
  -h, --help        Show this help

Commands:
  go <url>          Open a page (bare hosts get https://)
  search <query>    Search the built-in index
  back              Return to the previous page
  quit              Exit

Examples:
  tuibrowse                          Open home page
  tuibrowse https://example.com      Open URL
  tuibrowse -p search:python         Print a search result page
  tuibrowse --init-config > ~/.config/tuibrowse/config.toml`)
}

// setup applies cfg to the package defaults and builds a browser.
func setup(cfg *config.Config, status io.Writer) *browser.Browser {
	fetcher.Configure(fetcher.Options{
		UserAgent:      cfg.Fetcher.UserAgent,
		TimeoutSeconds: cfg.Fetcher.TimeoutSeconds,
		ChromePath:     cfg.Fetcher.ChromePath,
		UseBrowser:     cfg.Fetcher.UseBrowser,
	})

	mapping := html.Options{
		ImageWidth: imageWidth(cfg),
		MaxDepth:   cfg.Rendering.MaxDepth,
	}

	var spinner *render.Spinner
	if render.IsTerminal(status) {
		style := render.SpinnerBraille
		if cfg.Fetcher.UseBrowser {
			style = render.SpinnerGlobe
		}
		spinner = render.NewSpinner(style)
	}

	client := fetcher.New()
	return browser.New(browser.Options{
		Out:     os.Stdout,
		Status:  status,
		Logger:  log.New(os.Stderr, "", 0),
		Pages:   client,
		Images:  client,
		Mapping: mapping,
		Aspect:  cfg.Rendering.CharAspect,
		Spinner: spinner,
	})
}

// imageWidth caps the configured image width to the output width.
func imageWidth(cfg *config.Config) int {
	width := cfg.Rendering.DefaultWidth
	if render.IsTerminal(os.Stdout) {
		width = render.Width(os.Stdout)
	}
	if cfg.Rendering.ImageWidth > 0 && cfg.Rendering.ImageWidth < width {
		width = cfg.Rendering.ImageWidth
	}
	return width
}

// warnColors tells the user when the terminal cannot show 24-bit color.
func warnColors() {
	if !render.IsTerminal(os.Stdout) {
		return
	}
	if termenv.ColorProfile() != termenv.TrueColor {
		fmt.Fprintln(os.Stderr, "warning: terminal does not report truecolor support; images may look wrong")
	}
}

func runPrint(ctx context.Context, cfg *config.Config, url string) error {
	if url == "" {
		url = browser.HomePage
	}
	// Status lines would interleave with the page on stdout.
	b := setup(cfg, os.Stderr)
	return b.Print(ctx, url)
}

func run(ctx context.Context, cfg *config.Config, url string) error {
	warnColors()
	b := setup(cfg, os.Stdout)

	if cfg.Session.RestoreSession && url == "" {
		s, err := session.Load()
		switch {
		case err == nil:
			if err := b.Restore(ctx, s.History); err != nil {
				return err
			}
		case !errors.Is(err, fs.ErrNotExist):
			log.Printf("restoring session: %v", err)
		}
	}

	prompter := lineedit.NewPrompter(cfg.HistoryPath())
	runErr := b.Run(ctx, prompter, url)
	if err := prompter.Close(); err != nil {
		log.Printf("saving history: %v", err)
	}

	if cfg.Session.RestoreSession {
		if err := session.Save(&session.Session{History: b.History().Entries()}); err != nil {
			log.Printf("saving session: %v", err)
		}
	}
	return runErr
}
