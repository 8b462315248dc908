// CLAUDE:SUMMARY Text folding strategies (lowercase with NFC, lowercase+strip-accents) shared by the canonicalizer and the mapping tables.
package facility

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer folds a trimmed text value.
type Normalizer func(string) string

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeLowercaseUTF8 lowercases and composes to NFC, keeping accents.
func NormalizeLowercaseUTF8(s string) string {
	return norm.NFC.String(strings.ToLower(s))
}

// NormalizeLowercaseASCII lowercases and strips accents (e.g. Clinique Évry -> clinique evry).
func NormalizeLowercaseASCII(s string) string {
	result, _, _ := transform.String(stripAccents, strings.ToLower(s))
	return result
}

// GetNormalizer returns the normalizer for the given mode.
// Default is lowercase_utf8.
func GetNormalizer(mode string) Normalizer {
	switch mode {
	case "lowercase_ascii":
		return NormalizeLowercaseASCII
	default:
		return NormalizeLowercaseUTF8
	}
}

// headerKey is the lookup key for raw headers: trimmed, inner whitespace
// collapsed, lowercased.
func headerKey(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}
