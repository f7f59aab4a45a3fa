package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizeName prepares a name for similarity comparison: lowercase,
// accents stripped, whitespace collapsed.
func normalizeName(s string) string {
	s = strings.ToLower(s)
	s = removeAccents(s)
	return strings.Join(strings.Fields(s), " ")
}

// removeAccents strips diacritical marks (e.g., "Montréal" → "Montreal").
func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}
