package plate

import "strings"

// Normalize canonicalizes plate text for comparison: uppercase, ASCII
// alphanumerics only. Whitespace, punctuation and non-ASCII runes are
// discarded. Two plate codes are equal iff their normalized forms are
// byte-equal.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		}
	}
	return b.String()
}
