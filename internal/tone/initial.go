package tone

import (
	"fmt"
	"strings"

	"github.com/eNzyOfficial/gai-er/internal/alphabet"
	"github.com/eNzyOfficial/gai-er/internal/thai"
)

// Initial-consonant resolutions, in precedence order.
const (
	viaHoNam   = "ho-nam"
	viaONam    = "o-nam"
	viaCluster = "cluster"
	viaPlain   = "plain"
)

// initial is the outcome of initial-consonant resolution.
type initial struct {
	consonant *thai.Grapheme
	class     thai.Class
	offset    int    // index of the first consonant, 1 after a leading vowel
	via       string // empty when nothing resolved
	note      string
}

// resolveInitial finds the effective initial consonant of a syllable and the
// class it behaves as.
func resolveInitial(chars []rune, cat *alphabet.Catalog) initial {
	res := initial{}
	if len(chars) > 0 && isLeadingVowel(chars[0]) {
		res.offset = 1
	}

	c1, ok1 := consonantAt(chars, res.offset, cat)
	c2, ok2 := consonantAt(chars, res.offset+1, cat)

	switch {
	case ok1 && c1.Character == hoHip && ok2 && c2.Class == thai.ClassLow:
		res.consonant, res.class, res.via = &c2, thai.ClassHigh, viaHoNam
		res.note = fmt.Sprintf("Ho nam (ห นำ): %q behaves as high class.", c2.Character)

	case ok1 && c1.Character == oAng && ok2:
		res.consonant, res.class, res.via = &c2, c2.Class, viaONam
		res.note = fmt.Sprintf("O nam (อ นำ): %q determines the class.", c2.Character)

	case ok1 && ok2:
		res.consonant, res.class, res.via = &c1, c1.Class, viaPlain
		if cls, ok := ClusterClass(c1.Character + c2.Character); ok {
			res.class, res.via = cls, viaCluster
			res.note = fmt.Sprintf("Consonant cluster %q behaves as %s class (Sanskrit-derived cluster overrides the class).",
				c1.Character+c2.Character, cls)
		}

	case ok1:
		res.consonant, res.class, res.via = &c1, c1.Class, viaPlain

	default:
		res.note = "Unable to determine the initial consonant. This syllable may need dictionary knowledge."
	}

	return res
}

func consonantAt(chars []rune, i int, cat *alphabet.Catalog) (thai.Grapheme, bool) {
	if i < 0 || i >= len(chars) {
		return thai.Grapheme{}, false
	}
	return cat.Consonant(string(chars[i]))
}

// scanToneMarks counts the tone marks in a syllable and resolves the first
// one against the catalog, synthesizing a placeholder when it is missing.
func scanToneMarks(chars []rune, cat *alphabet.Catalog) (*thai.Sign, rune, int) {
	var (
		sign  *thai.Sign
		first rune
		count int
	)

	for _, r := range chars {
		if !isToneMark(r) {
			continue
		}
		count++
		if sign != nil {
			continue
		}

		first = r
		if g, ok := cat.Lookup(string(r)); ok {
			sign = thai.Resolved(g)
		} else {
			sign = thai.Synthesized(string(r), string(r), false)
		}
	}

	return sign, first, count
}

// effectiveChars drops every thanthakhat together with the character it
// silences. Indices are marked right to left on the original sequence and
// the survivors copied into a fresh slice, so no index ever shifts.
func effectiveChars(chars []rune) ([]rune, bool) {
	elided := make([]bool, len(chars))
	changed := false

	for i := len(chars) - 1; i > 0; i-- {
		if chars[i] != thanthakhat || elided[i] {
			continue
		}
		elided[i], elided[i-1] = true, true
		changed = true
		i--
	}

	out := make([]rune, 0, len(chars))
	for i, r := range chars {
		if !elided[i] {
			out = append(out, r)
		}
	}

	return out, changed
}

// vowelSigns returns the sign characters of a vowel record, without the
// consonant carrier and the position placeholder.
func vowelSigns(v thai.Grapheme) []rune {
	var signs []rune
	for _, r := range v.Character {
		if string(r) == oAng || r == placeholder {
			continue
		}
		signs = append(signs, r)
	}
	return signs
}

func describeSign(s *thai.Sign) string {
	if s == nil {
		return "none"
	}
	if s.Name != "" && s.Name != s.Character {
		return fmt.Sprintf("%q (%s)", s.Character, s.Name)
	}
	return fmt.Sprintf("%q", s.Character)
}

func joinChars(gs []thai.Grapheme) string {
	var b strings.Builder
	for _, g := range gs {
		b.WriteString(g.Character)
	}
	return b.String()
}
