// Package text provides the normalization and tokenization shared by the
// lexical matcher and the segmentation statistics.
package text

import (
	"regexp"
	"strings"
)

var (
	specialRe    = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize lowercases, trims, strips every character that is not a
// lowercase letter, digit, or whitespace, and collapses whitespace runs to
// single spaces. Pure function; applied identically to queries and corpus.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.TrimSpace(s)
	s = specialRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return s
}

// Tokenize normalizes s and splits it on whitespace.
func Tokenize(s string) []string {
	return strings.Fields(Normalize(s))
}

// TokenSet returns the distinct tokens of s. Duplicates collapse and order
// is irrelevant.
func TokenSet(s string) map[string]struct{} {
	tokens := Tokenize(s)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// WordCount counts whitespace-delimited words in raw (unnormalized) text.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
