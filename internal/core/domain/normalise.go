package domain

import (
	"strings"
	"unicode"
)

// vulgarFractions are the fraction glyphs that survive normalisation.
const vulgarFractions = "½⅓⅔¼¾⅕⅖⅗⅘⅙⅚⅐⅛⅜⅝⅞⅑⅒"

// allowedPunctuation are the ASCII punctuation characters that survive normalisation.
const allowedPunctuation = " ,.!?'-"

// Normalise filters s down to word characters, spaces, the punctuation
// ", . ! ? ' -" and the common vulgar fractions. Everything else is dropped.
// When commaReplacement is non-empty every comma, together with the spaces
// directly after it, is replaced with it: "a, b" becomes "a /b" for " /".
// The result is trimmed of surrounding whitespace.
//
// Normalise is applied to every name before it is used as a lookup key or
// written as a label, so "Chicken, Thigh!" and " Chicken, Thigh! " resolve
// to the same reference entity.
func Normalise(s, commaReplacement string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	afterComma := false
	for _, r := range s {
		if !isAllowed(r) {
			continue
		}
		if afterComma && r == ' ' {
			continue
		}
		afterComma = false
		if r == ',' && commaReplacement != "" {
			b.WriteString(commaReplacement)
			afterComma = true
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

func isAllowed(r rune) bool {
	switch {
	case unicode.IsLetter(r), unicode.IsNumber(r), r == '_':
		return true
	case strings.ContainsRune(allowedPunctuation, r):
		return true
	case strings.ContainsRune(vulgarFractions, r):
		return true
	default:
		return false
	}
}

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
// A word is a maximal run of letters, so "sun-dried tomatoes" becomes
// "Sun-Dried Tomatoes" and "o'brien" becomes "O'Brien".
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			prevLetter = true
			continue
		}
		prevLetter = false
		b.WriteRune(r)
	}
	return b.String()
}

// CleanName is the stored form of a reference name: normalised, with runs of
// inner whitespace collapsed to one space.
func CleanName(s string) string {
	return strings.Join(strings.Fields(Normalise(s, "")), " ")
}

// NameKey is the comparison form of a reference name: CleanName with case folded.
func NameKey(s string) string {
	return strings.ToLower(CleanName(s))
}
