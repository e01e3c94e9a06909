// Package search answers queries from a local, built-in result set.
package search

import (
	"sort"
	"strings"
)

// Scheme prefixes search locators, e.g. "search:python".
const Scheme = "search:"

// Results is a search response. A provider either supplies a full Page or
// leaves it empty and lists Suggestions for queries that would match.
type Results struct {
	Query       string   // The search query
	Provider    string   // Provider that executed the search
	Page        string   // Prebuilt markup that replaces the generated page
	Suggestions []string // Queries known to produce results
}

// Provider defines the interface for search providers.
type Provider interface {
	// Search performs a search and returns results.
	Search(query string) (*Results, error)

	// Name returns the provider's display name.
	Name() string
}

// DefaultProvider returns the built-in provider.
func DefaultProvider() Provider {
	return NewLocal()
}

// Locator returns the search locator for query.
func Locator(query string) string {
	return Scheme + strings.TrimSpace(query)
}

// ParseLocator extracts the query from a search locator.
func ParseLocator(loc string) (string, bool) {
	if !strings.HasPrefix(loc, Scheme) {
		return "", false
	}
	return strings.TrimSpace(loc[len(Scheme):]), true
}

// Local serves canned pages for a handful of queries.
type Local struct {
	pages map[string]string
}

// NewLocal returns the built-in dataset.
func NewLocal() *Local {
	return &Local{pages: map[string]string{
		"hello":   `<title>Hello World!</title><h1>Hello Page</h1><p>Welcome to the hello page!</p><img src="hello_image.png" alt="Hello"><ul><li>Greeting</li><li>World</li></ul>`,
		"python":  `<title>Python Info</title><h1>Python Programming</h1><p>Python is a high-level, interpreted programming language.</p><p>Learn more at <a href="https://python.org">python.org</a>.</p><button>Go to Python Website</button>`,
		"example": `<title>Example Result</title><h1>Example Search Result</h1><p>This is a custom result for 'example'.</p>`,
	}}
}

func (l *Local) Name() string { return "local" }

// Search returns the canned page for query, or an empty result set with
// suggestions.
func (l *Local) Search(query string) (*Results, error) {
	query = strings.TrimSpace(query)
	res := &Results{Query: query, Provider: l.Name()}
	if page, ok := l.pages[query]; ok {
		res.Page = page
		return res, nil
	}
	for q := range l.pages {
		res.Suggestions = append(res.Suggestions, q)
	}
	sort.Strings(res.Suggestions)
	return res, nil
}
