package tone

import (
	"slices"

	"github.com/eNzyOfficial/gai-er/internal/alphabet"
	"github.com/eNzyOfficial/gai-er/internal/thai"
)

// resolveVowel locates the written vowel of a syllable in its effective
// character sequence. The ro-han pattern wins over catalog vowels; after
// that the first vowel record, in catalog order, with any sign present is
// taken. It returns the index of the matched sign, or -1.
func resolveVowel(eff []rune, cat *alphabet.Catalog) (*thai.Sign, int) {
	if idx := indexRunes(eff, roHan); idx >= 0 {
		return thai.Synthesized("◌ะ", "ro han vowel", true), idx + 1
	}

	for _, v := range cat.Vowels() {
		for _, sign := range vowelSigns(v) {
			if idx := slices.Index(eff, sign); idx >= 0 {
				return thai.Resolved(v), idx
			}
		}
	}

	return nil, -1
}

// resolveFinal scans from the end of the syllable back to, but not
// including, the vowel position. The rightmost consonant is the effective
// final; the others are returned, left to right, as the collapsed cluster.
func resolveFinal(eff []rune, vowelIndex int, cat *alphabet.Catalog) (*thai.Grapheme, []thai.Grapheme) {
	var found []thai.Grapheme
	for i := len(eff) - 1; i > vowelIndex; i-- {
		if g, ok := cat.Consonant(string(eff[i])); ok {
			found = append(found, g)
		}
	}

	if len(found) == 0 {
		return nil, nil
	}

	final := found[0]
	slices.Reverse(found)
	return &final, found
}
