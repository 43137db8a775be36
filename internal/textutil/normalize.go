package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

var fold = cases.Fold()

// Normalize lowercases text using full Unicode case folding and collapses
// runs of whitespace into single spaces. Match scoring compares normalized
// forms so that provider results and local metadata fold the same way.
func Normalize(text string) string {
	folded := fold.String(strings.TrimSpace(text))
	var b strings.Builder
	b.Grow(len(folded))
	prevSpace := false
	for _, r := range folded {
		if unicode.IsSpace(r) {
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
			continue
		}
		b.WriteRune(r)
		prevSpace = false
	}
	return b.String()
}

// EqualFold reports whether two strings are equal after normalization.
func EqualFold(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// ContainsFold reports whether haystack contains needle after normalization.
// An empty needle never matches.
func ContainsFold(haystack, needle string) bool {
	n := Normalize(needle)
	if n == "" {
		return false
	}
	return strings.Contains(Normalize(haystack), n)
}
