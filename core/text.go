package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var ligatures = strings.NewReplacer("œ", "oe", "Œ", "OE", "æ", "ae", "Æ", "AE")

// NormalizeText folds case and strips diacritics, so "Récent" and "recent"
// compare equal. Every word comparison in the system goes through here.
func NormalizeText(text string) string {
	// Transformers are stateful and cannot be shared across goroutines.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), cases.Fold(), norm.NFC)
	folded, _, err := transform.String(t, ligatures.Replace(text))
	if err != nil {
		return strings.ToLower(text)
	}
	return folded
}

// Tokenize splits text into normalized runs of letters and digits.
// Apostrophes and hyphens separate tokens: "d'action" yields "d", "action".
func Tokenize(text string) []string {
	return strings.FieldsFunc(NormalizeText(text), func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsNumber(c)
	})
}

// NormalizeKey is the storage and comparison key of a word or phrase:
// its tokens joined by single spaces.
func NormalizeKey(text string) string {
	return strings.Join(Tokenize(text), " ")
}

// ContainsRun reports whether needle occurs as a contiguous run in tokens.
func ContainsRun(tokens, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(tokens) {
		return false
	}
outer:
	for i := 0; i+len(needle) <= len(tokens); i++ {
		for j, n := range needle {
			if tokens[i+j] != n {
				continue outer
			}
		}
		return true
	}
	return false
}
