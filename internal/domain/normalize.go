package domain

import (
	"strings"
)

// NormalizeText trims, lowercases and compresses inner whitespace runs into one space.
// It is the comparison key for case-insensitive matching.
func NormalizeText(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// ContainsFold reports whether sub occurs in s ignoring case, like ILIKE '%sub%'.
// An empty sub never matches.
func ContainsFold(s, sub string) bool {
	if sub == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// HasPrefixFold reports whether s starts with prefix ignoring case, like ILIKE 'prefix%'.
func HasPrefixFold(s, prefix string) bool {
	if prefix == "" {
		return false
	}
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}
