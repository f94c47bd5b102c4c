// Package catalog provides name normalization for catalog entities.
package catalog

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Matches runs of whitespace.
var whitespace = regexp.MustCompile(`\s+`)

// fold performs Unicode case folding, the locale-independent caseless
// matching defined by the Unicode standard.
var fold = cases.Fold()

// NormalizeName reduces a genre name to its identity form for uniqueness
// checks and index keys.
// "Fantasy" and "fantasy" normalize to the same value, as do names that
// differ only in compatibility forms ("ﬁ" ligature vs "fi") or in the amount
// of internal whitespace.
//
// The display name keeps its original casing; only the index uses this form.
func NormalizeName(name string) string {
	// Normalize unicode (compose and unify compatibility characters).
	s := norm.NFKC.String(name)

	// Case-fold for caseless comparison.
	s = fold.String(s)

	// Collapse internal whitespace and trim the edges.
	s = whitespace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	return s
}

// NamesEqual reports whether two genre names are the same under
// case-insensitive comparison.
func NamesEqual(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}
