package tone

import (
	"strings"

	"github.com/eNzyOfficial/gai-er/internal/thai"
)

// Liveness of a final sound code.
const (
	finalUnknown = iota
	finalDead
	finalLive
)

// classifyFinal matches a final consonant's sound code against the stop
// and sonorant categories. Stops are checked first.
func classifyFinal(final *thai.Grapheme) int {
	if final == nil || final.FinalConsonant == "" {
		return finalUnknown
	}

	sound := final.FinalConsonant
	for _, d := range deadFinals {
		if strings.Contains(sound, d) {
			return finalDead
		}
	}
	for _, l := range liveFinals {
		if strings.Contains(sound, l) {
			return finalLive
		}
	}

	return finalUnknown
}

// IsLive reports whether a syllable is live. A final with a known sound code
// decides on its own; otherwise a long vowel makes the syllable live.
func IsLive(length thai.VowelLength, final *thai.Grapheme) bool {
	switch classifyFinal(final) {
	case finalDead:
		return false
	case finalLive:
		return true
	}
	return length == thai.Long
}

// markTones holds the tone for each (class, tone mark) pair. Pairs missing
// from the table evaluate to ToneUnknown.
var markTones = map[thai.Class]map[rune]thai.Tone{
	thai.ClassMid: {
		maiEk:       thai.ToneLow,
		maiTho:      thai.ToneFalling,
		maiTri:      thai.ToneHigh,
		maiChattawa: thai.ToneRising,
	},
	thai.ClassHigh: {
		maiEk:  thai.ToneLow,
		maiTho: thai.ToneFalling,
	},
	thai.ClassLow: {
		maiEk:  thai.ToneFalling,
		maiTho: thai.ToneHigh,
	},
}

// Evaluate looks up the tone for a consonant class, tone mark (0 for none),
// liveness and vowel length.
func Evaluate(class thai.Class, mark rune, live bool, length thai.VowelLength) thai.Tone {
	if !class.Valid() {
		return thai.ToneUnknown
	}

	if mark != 0 {
		if t, ok := markTones[class][mark]; ok {
			return t
		}
		return thai.ToneUnknown
	}

	switch class {
	case thai.ClassMid:
		if live {
			return thai.ToneMid
		}
		return thai.ToneLow
	case thai.ClassHigh:
		if live {
			return thai.ToneRising
		}
		return thai.ToneLow
	default:
		if live {
			return thai.ToneMid
		}
		if length == thai.Short {
			return thai.ToneHigh
		}
		return thai.ToneFalling
	}
}
