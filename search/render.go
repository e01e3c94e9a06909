package search

import (
	"fmt"
	"strings"
)

// ToHTML converts search results into an HTML document.
func (r *Results) ToHTML() string {
	if r.Page != "" {
		return r.Page
	}

	var sb strings.Builder
	heading := fmt.Sprintf("Search Results for &quot;%s&quot;", escapeHTML(r.Query))
	sb.WriteString(fmt.Sprintf("<title>%s</title><h1>%s</h1>\n", heading, heading))

	sb.WriteString("<p>No results found for your query.")
	if len(r.Suggestions) > 0 {
		quoted := make([]string, len(r.Suggestions))
		for i, s := range r.Suggestions {
			quoted[i] = "'" + escapeHTML(s) + "'"
		}
		sb.WriteString(" Try " + joinOr(quoted) + ".")
	}
	sb.WriteString("</p>\n")
	return sb.String()
}

// joinOr joins items as "a, b, or c".
func joinOr(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
}

// escapeHTML escapes special HTML characters.
func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}
