// Package sanitizer normalizes user-supplied text before it is validated
// and persisted. It never rejects input; rejection is the validators' job.
package sanitizer

import (
	"strings"
	"unicode"
)

// Text trims the string, collapses runs of whitespace to a single space,
// and strips control characters. Used for free-form fields such as review
// content.
func Text(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastWasSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !lastWasSpace {
				b.WriteRune(' ')
				lastWasSpace = true
			}
		case unicode.IsControl(r):
			// drop
		default:
			b.WriteRune(r)
			lastWasSpace = false
		}
	}

	return strings.TrimSpace(b.String())
}

// Label applies Text and caps the result at maxLen runes. Used for short
// catalog fields such as room names and locations.
func Label(s string, maxLen int) string {
	s = Text(s)
	if maxLen <= 0 {
		return s
	}

	runes := []rune(s)
	if len(runes) > maxLen {
		return strings.TrimSpace(string(runes[:maxLen]))
	}
	return s
}
