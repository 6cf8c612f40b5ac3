package md

import (
	"regexp"

	"golang.org/x/net/html"
)

// Escape makes text safe for XML element content and attribute values.
func Escape(text string) string {
	return html.EscapeString(text)
}

var simpleTagPattern = regexp.MustCompile(`<[^<>]*>`)

// StripTags removes markup tags from an already rendered fragment and
// returns the remaining text escaped exactly once.
func StripTags(fragment string) string {
	text := simpleTagPattern.ReplaceAllString(fragment, "")
	return Escape(html.UnescapeString(text))
}
