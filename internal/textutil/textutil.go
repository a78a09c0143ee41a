package textutil

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

// Normalize collapses whitespace runs to single spaces, decodes HTML
// entities, and trims. Extraction, cataloging, and rewriting all compare
// text through this one function; the text→key round trip depends on every
// caller using it.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// ContainsHangul reports whether a string contains Korean syllables.
// Coarse character-range heuristic; kept behind this one function so it can
// be swapped for real script detection without touching callers.
func ContainsHangul(s string) bool {
	for _, r := range s {
		if r >= 0xAC00 && r <= 0xD7A3 {
			return true
		}
	}
	return false
}

var latinOnly = regexp.MustCompile(`^[A-Za-z0-9\s\-.,!?()@:/&'"%+]+$`)

// IsLatinOnly reports whether a string is composed entirely of Latin
// letters, digits, and common punctuation, i.e. already in the target
// language as far as the resolver is concerned.
func IsLatinOnly(s string) bool {
	return latinOnly.MatchString(s)
}

// RuneLen returns the length of s in code points.
func RuneLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// HasDigit reports whether s contains a decimal digit.
func HasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Truncate shortens a string to maxLen runes, appending "..." if truncated.
// Rune-based so the cut never splits a multi-byte character.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
