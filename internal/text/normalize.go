// Package text canonicalizes transcribed speech into comparable command strings.
package text

import "strings"

// Normalize lowercases s, replaces every rune outside the allowed set
// (ASCII letters, digits, space, and ? ! . , ' -) with a space, and collapses
// the result to single-space-separated, trimmed form. It is total and
// idempotent; unparseable input degrades to an empty string.
func Normalize(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if allowed(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func allowed(r rune) bool {
	if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
		return true
	}
	switch r {
	case ' ', '?', '!', '.', ',', '\'', '-':
		return true
	}
	return false
}
