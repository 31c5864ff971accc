package tone

import "github.com/eNzyOfficial/gai-er/internal/thai"

// Characters with a fixed role in the orthographic rules.
const (
	maiEk       = '่' // low-mark
	maiTho      = '้' // falling-mark
	maiTri      = '๊' // high-mark
	maiChattawa = '๋' // rising-mark
	maiTaikhu   = '็' // forces a short vowel
	thanthakhat = '์' // silences the preceding character
	placeholder = '◌' // position placeholder in vowel records

	hoHip = "ห" // ho-nam leader
	oAng  = "อ" // o-nam leader and vowel carrier
)

// roHan is the doubled ro realised as a short "a" plus consonant.
var roHan = []rune("รร")

// clusters maps two-consonant onsets borrowed from Sanskrit/Pali to the
// class they behave as. Extend the table here; there is no general rule.
var clusters = map[string]thai.Class{
	"กร": thai.ClassMid,
	"ตร": thai.ClassMid,
	"ศร": thai.ClassHigh,
	"ซร": thai.ClassLow,
}

// ClusterClass returns the override class for a two-consonant onset.
func ClusterClass(pair string) (thai.Class, bool) {
	c, ok := clusters[pair]
	return c, ok
}

// deadFinals and liveFinals are matched as substrings of a final's sound code.
var (
	deadFinals = []string{"p", "t", "k"}
	liveFinals = []string{"m", "n", "ng", "y", "w", "l", "r"}
)

func isConsonant(r rune) bool {
	return r >= 'ก' && r <= 'ฮ'
}

func isLeadingVowel(r rune) bool {
	switch r {
	case 'เ', 'แ', 'โ', 'ใ', 'ไ':
		return true
	}
	return false
}

// isInlineVowel covers the vowel signs written after or around the consonant
// that the segmenter and the confidence rules look for.
func isInlineVowel(r rune) bool {
	switch r {
	case 'ะ', 'า', 'ิ', 'ี', 'ึ', 'ื', 'ุ', 'ู', maiTaikhu:
		return true
	}
	return false
}

func isToneMark(r rune) bool {
	switch r {
	case maiEk, maiTho, maiTri, maiChattawa:
		return true
	}
	return false
}

func indexRunes(s, sub []rune) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		match := true
		for j := range sub {
			if s[i+j] != sub[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func containsRune(s []rune, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
