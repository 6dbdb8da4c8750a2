// Package textnorm provides the shared text normalization used by the risk
// classifier, specialty classifier and alias matching. Keyword tables are
// pre-normalized ASCII, so every piece of free text must pass through here
// before any matching.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases the text, applies canonical decomposition and strips
// combining diacritical marks, so "Fejfájás" matches "fejfajas". Lossy and
// non-reversible. Empty input yields empty output.
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripper, lowered)
	if err != nil {
		return lowered
	}
	return out
}

// Tokens normalizes the text and splits it on non-alphanumeric boundaries.
func Tokens(text string) []string {
	normalized := Normalize(text)
	return strings.FieldsFunc(normalized, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}
