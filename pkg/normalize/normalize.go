// Package normalize canonicalizes Brazilian municipality names into
// comparison keys. Two names refer to the same municipality iff their keys
// under the same variant are equal.
//
// Publishers format names differently: one portal exports
// "Santa Cruz d'Oeste" where the registry says "SANTA CRUZ D OESTE". The
// Strict variant strips punctuation so both sides produce the same key; the
// AccentFold variant only removes accents and case, for publishers whose raw
// lists follow registry punctuation. Each publisher integration declares
// which variant it needs.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Variant selects the normalization strictness for a publisher integration.
type Variant string

const (
	// Strict removes accents, uppercases, strips every character outside
	// [A-Z0-9 ] and collapses whitespace. Required whenever the two sides
	// being compared may format hyphenated or apostrophized names
	// differently.
	Strict Variant = "strict"

	// AccentFold removes accents, lowercases and collapses whitespace,
	// keeping punctuation. Suitable when both sides follow the registry's
	// own punctuation conventions.
	AccentFold Variant = "accent-fold"
)

// stripMarks removes combining marks after canonical decomposition.
// Canonical (NFD), not compatibility, decomposition is used so every caller
// derives the same key for the same character.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Valid reports whether v names a known variant.
func (v Variant) Valid() bool {
	return v == Strict || v == AccentFold
}

// Key canonicalizes name into a comparison key. It is pure, total and
// idempotent: Key(Key(name)) == Key(name).
func (v Variant) Key(name string) string {
	folded := StripMarks(name)

	switch v {
	case AccentFold:
		return collapseSpaces(strings.ToLower(folded))
	default:
		upper := strings.ToUpper(folded)
		var b strings.Builder
		b.Grow(len(upper))
		for _, r := range upper {
			switch {
			case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
				b.WriteRune(r)
			default:
				// Hyphens and apostrophes become word breaks, not
				// concatenation: "d'Oeste" must key as "D OESTE".
				b.WriteRune(' ')
			}
		}
		return collapseSpaces(b.String())
	}
}

// StripMarks removes accent marks from name, leaving case and punctuation
// untouched. Used directly by publishers that address municipalities by a
// deaccented display name.
func StripMarks(name string) string {
	stripped, _, err := transform.String(stripMarks, name)
	if err != nil {
		// Mark removal cannot fail on valid UTF-8; fall back to the input.
		return name
	}
	return stripped
}

// collapseSpaces reduces runs of whitespace to a single space and trims ends.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
