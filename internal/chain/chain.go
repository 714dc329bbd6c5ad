// Package chain implements the letter-chain rule of the game: every word
// must begin with the letter the previous word ended with.
package chain

import (
	"strings"
	"unicode"
)

// RequiredLetter - returns the lowercased letter the next word must start
// with, derived from the last word character of previous. Returns "" when
// previous is empty or contains no word characters (such a word imposes no
// constraint on the next move).
func RequiredLetter(previous string) string {
	runes := []rune(strings.TrimSpace(previous))
	for i := len(runes) - 1; i >= 0; i-- {
		if isWordChar(runes[i]) {
			return strings.ToLower(string(runes[i]))
		}
	}

	return ""
}

// FirstLetter - returns the lowercased first character of candidate after
// trimming leading whitespace, or "" for a blank candidate.
func FirstLetter(candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}

	runes := []rune(trimmed)

	return strings.ToLower(string(runes[0]))
}

// Continues - reports whether candidate may legally follow previous.
// The first move (empty previous) accepts any non-empty candidate.
func Continues(candidate, previous string) bool {
	if strings.TrimSpace(candidate) == "" {
		return false
	}

	required := RequiredLetter(previous)
	if required == "" {
		return true
	}

	return FirstLetter(candidate) == required
}

// isWordChar - letters, digits and underscore count as word characters;
// punctuation does not.
func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
