package domain

import (
	"strings"
	"unicode"
)

// NormalizeText prepares free text for case-insensitive matching:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - collapses any run of whitespace into a single space
//
// Diacritics and punctuation are preserved.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteByte(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// MatchesQuery reports whether the normalized query is a substring of any of
// the given fields. An empty query matches nothing.
func MatchesQuery(query string, fields ...string) bool {
	q := NormalizeText(query)
	if q == "" {
		return false
	}
	for _, f := range fields {
		if strings.Contains(NormalizeText(f), q) {
			return true
		}
	}
	return false
}
