package tone

// Segment splits unspaced Thai text into syllable-sized pieces.
//
// A boundary goes before a consonant when the current piece already holds a
// vowel and the consonant is directly followed by a vowel sign or a leading
// vowel. A leading vowel only counts once the consonant it precedes is in
// the piece. Pieces are cut on byte offsets of the input, so joining the
// result gives back text unchanged, invalid UTF-8 included.
func Segment(text string) []string {
	type pos struct {
		r  rune
		at int
	}

	var chars []pos
	for at, r := range text {
		chars = append(chars, pos{r: r, at: at})
	}

	var out []string
	start := 0
	seenVowel, pendingLead := false, false

	for i, c := range chars {
		if c.at > start && seenVowel && isConsonant(c.r) && i+1 < len(chars) {
			next := chars[i+1].r
			if isInlineVowel(next) || isLeadingVowel(next) {
				out = append(out, text[start:c.at])
				start = c.at
				seenVowel, pendingLead = false, false
			}
		}

		switch {
		case isLeadingVowel(c.r):
			pendingLead = true
		case isInlineVowel(c.r):
			seenVowel = true
		case pendingLead:
			seenVowel, pendingLead = true, false
		}
	}

	if start < len(text) {
		out = append(out, text[start:])
	}

	return out
}
