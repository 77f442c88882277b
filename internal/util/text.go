package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CleanText normalizes instructor-curated text before persistence:
// NFKC-folds compatibility characters, drops NULs and replacement
// characters, and maps other non-printable runes to spaces. Tabs and
// newlines survive.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == 0 || r == unicode.ReplacementChar:
			// dropped
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(r)
		case unicode.IsPrint(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// NormalizeWhitespace collapses runs of whitespace to single spaces and
// trims the result. Pattern texts are stored in this form so that the
// (topic, pattern) uniqueness constraint is not defeated by formatting.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
