package catalog

import "strings"

// Capitalize upper-cases every ASCII lowercase letter that begins a word.
// A letter directly after an apostrophe (' or ’) is left alone, so
// "king's landing" becomes "King's Landing" rather than "King'S Landing".
// Word boundaries follow ASCII word characters: letters, digits and '_'.
func Capitalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var prev rune
	first := true
	for _, r := range s {
		if r >= 'a' && r <= 'z' && (first || (!isWordRune(prev) && prev != '\'' && prev != '’')) {
			r -= 'a' - 'A'
		}
		b.WriteRune(r)
		prev = r
		first = false
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
