// Package fetcher retrieves documents and images over HTTP, with an optional
// headless browser mode for pages that need JavaScript.
package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/net/html/charset"
)

// MaxBodyBytes caps how much of a response body is read.
const MaxBodyBytes = 32 << 20

// ErrStatus is wrapped by FetchError for non-2xx responses.
var ErrStatus = errors.New("unexpected status")

// FetchError reports a failed retrieval.
type FetchError struct {
	URL    string
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: %s", e.URL, e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Err }

// FetchResult contains the fetched HTML and metadata.
type FetchResult struct {
	HTML        string
	FinalURL    string // URL after following redirects
	Size        int    // bytes received
	UsedBrowser bool
	FetchTime   time.Duration
}

// Options configures the fetcher behavior.
type Options struct {
	UserAgent      string
	TimeoutSeconds int
	ChromePath     string // Path to Chrome binary (empty = auto-detect)
	UseBrowser     bool   // render pages with headless Chrome
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		UserAgent:      "tuibrowse/1.0 (Terminal Browser)",
		TimeoutSeconds: 10,
	}
}

// Package-level options (set via Configure)
var opts = DefaultOptions()

// Configure sets the package-level options.
func Configure(o Options) {
	if o.UserAgent != "" {
		opts.UserAgent = o.UserAgent
	}
	if o.TimeoutSeconds > 0 {
		opts.TimeoutSeconds = o.TimeoutSeconds
	}
	opts.ChromePath = o.ChromePath // Can be empty
	opts.UseBrowser = o.UseBrowser
}

// Client fetches URLs. The zero value is not usable; use New.
type Client struct {
	http *http.Client
	opts Options
}

// New returns a client using the package-level options.
func New() *Client {
	return NewWithOptions(opts)
}

// NewWithOptions returns a client with explicit options.
func NewWithOptions(o Options) *Client {
	d := DefaultOptions()
	if o.UserAgent == "" {
		o.UserAgent = d.UserAgent
	}
	if o.TimeoutSeconds <= 0 {
		o.TimeoutSeconds = d.TimeoutSeconds
	}
	return &Client{
		http: &http.Client{Timeout: time.Duration(o.TimeoutSeconds) * time.Second},
		opts: o,
	}
}

// NormalizeURL adds an https scheme to bare host names.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

// Origin returns scheme://host of the first candidate that is an absolute
// URL, or "" when none is.
func Origin(candidates ...string) string {
	for _, c := range candidates {
		u, err := neturl.Parse(c)
		if err != nil || u.Scheme == "" || u.Host == "" {
			continue
		}
		return u.Scheme + "://" + u.Host
	}
	return ""
}

// Fetch returns the raw body at locator.
func (c *Client) Fetch(ctx context.Context, locator string) ([]byte, error) {
	body, _, err := c.get(ctx, locator)
	return body, err
}

func (c *Client) get(ctx context.Context, url string) ([]byte, *http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, &FetchError{URL: url, Reason: "invalid request", Err: err}
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp, &FetchError{URL: url, Reason: resp.Status, Err: ErrStatus}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, resp, &FetchError{URL: url, Reason: "reading response", Err: err}
	}
	return body, resp, nil
}

// Simple fetches an HTML page using standard HTTP, decoding the body to UTF-8.
func (c *Client) Simple(ctx context.Context, url string) (*FetchResult, error) {
	start := time.Now()

	body, resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	r, err := charset.NewReader(bytes.NewReader(body), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &FetchError{URL: url, Reason: "decoding charset", Err: err}
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return nil, &FetchError{URL: url, Reason: "decoding charset", Err: err}
	}

	return &FetchResult{
		HTML:      string(decoded),
		FinalURL:  resp.Request.URL.String(),
		Size:      len(body),
		FetchTime: time.Since(start),
	}, nil
}

// FetchPage fetches an HTML page, using the headless browser when the
// client is configured for it.
func (c *Client) FetchPage(ctx context.Context, url string) (*FetchResult, error) {
	if c.opts.UseBrowser {
		return c.WithBrowser(ctx, url)
	}
	return c.Simple(ctx, url)
}

// userDataDir returns a persistent directory for Chrome user data.
func userDataDir() string {
	dir, _ := os.UserCacheDir()
	return filepath.Join(dir, "tuibrowse-chrome-profile")
}

// WithBrowser fetches a URL using headless Chrome to execute JavaScript.
func (c *Client) WithBrowser(ctx context.Context, targetURL string) (*FetchResult, error) {
	start := time.Now()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(c.opts.UserAgent),
		chromedp.WindowSize(1280, 1024),
		chromedp.UserDataDir(userDataDir()),
	)
	if c.opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(c.opts.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	// Browser fetches get extra time
	timeout := time.Duration(c.opts.TimeoutSeconds)*time.Second + 15*time.Second
	tctx, cancel := context.WithTimeout(allocCtx, timeout)
	defer cancel()

	bctx, cancel := chromedp.NewContext(tctx)
	defer cancel()

	var html, finalURL string
	err := chromedp.Run(bctx,
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		chromedp.Location(&finalURL),
	)
	if err != nil {
		return nil, &FetchError{URL: targetURL, Reason: "browser fetch failed", Err: err}
	}

	return &FetchResult{
		HTML:        html,
		FinalURL:    finalURL,
		Size:        len(html),
		UsedBrowser: true,
		FetchTime:   time.Since(start),
	}, nil
}
