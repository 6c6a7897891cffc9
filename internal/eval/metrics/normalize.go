package metrics

import (
	"strings"
	"unicode"
)

var articles = map[string]bool{
	"a":   true,
	"an":  true,
	"the": true,
}

// Normalize canonicalizes an answer for comparison. Everything that is not a
// word character or whitespace is removed, then the articles a/an/the are
// dropped and whitespace is collapsed.
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	stripped := strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, lowered)

	fields := strings.Fields(stripped)
	kept := fields[:0]
	for _, f := range fields {
		if articles[f] {
			continue
		}
		kept = append(kept, f)
	}

	return strings.Join(kept, " ")
}

// Tokens returns the whitespace tokens of the normalized text.
func Tokens(text string) []string {
	return strings.Fields(Normalize(text))
}
