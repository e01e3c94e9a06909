package search

import (
	"strings"
	"testing"
)

func TestLocalKnownQueries(t *testing.T) {
	p := NewLocal()
	tests := []struct {
		query string
		want  string
	}{
		{"hello", "<title>Hello World!</title>"},
		{"python", "<button>Go to Python Website</button>"},
		{" example ", "<h1>Example Search Result</h1>"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res, err := p.Search(tt.query)
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if !strings.Contains(res.ToHTML(), tt.want) {
				t.Errorf("page %q does not contain %q", res.ToHTML(), tt.want)
			}
		})
	}
}

func TestLocalNoResults(t *testing.T) {
	res, err := NewLocal().Search(`<b>"x"</b>`)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	page := res.ToHTML()

	if !strings.Contains(page, "<title>Search Results for &quot;&lt;b&gt;&quot;x&quot;&lt;/b&gt;&quot;</title>") {
		t.Errorf("query not escaped in title: %q", page)
	}
	if !strings.Contains(page, "Try 'example', 'hello', or 'python'.") {
		t.Errorf("missing suggestions: %q", page)
	}
}

func TestLocator(t *testing.T) {
	loc := Locator("  python ")
	if loc != "search:python" {
		t.Errorf("Locator = %q", loc)
	}
	q, ok := ParseLocator(loc)
	if !ok || q != "python" {
		t.Errorf("ParseLocator = %q, %v", q, ok)
	}
	if _, ok := ParseLocator("https://example.com"); ok {
		t.Error("plain URL parsed as search")
	}
}

func TestJoinOr(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"a"}, "a"},
		{[]string{"a", "b"}, "a or b"},
		{[]string{"a", "b", "c"}, "a, b, or c"},
	}
	for _, tt := range tests {
		if got := joinOr(tt.in); got != tt.want {
			t.Errorf("joinOr(%v) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestNoSuggestions(t *testing.T) {
	page := (&Results{Query: "x"}).ToHTML()
	if !strings.HasSuffix(page, "<p>No results found for your query.</p>\n") {
		t.Errorf("unexpected page %q", page)
	}
}
