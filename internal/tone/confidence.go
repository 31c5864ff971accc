package tone

import "github.com/eNzyOfficial/gai-er/internal/thai"

// Evidence is what the confidence rules look at for one syllable.
type Evidence struct {
	ToneMarks       int  // tone marks written in the syllable
	Consonants      int  // characters in the consonant range
	InlineVowel     bool // any vowel sign written after or around a consonant
	Initial         bool // an initial consonant was resolved
	WrittenVowel    bool // a vowel was found, ro-han included
	MaiTaikhu       bool
	ClusterOverride bool // the initial class came from the cluster table
	Final           bool
	FinalSoundKnown bool
}

// Rule lowers confidence to Severity when Applies holds.
type Rule struct {
	Name     string
	Severity thai.Confidence
	Note     string // added to the explanation when the rule fires
	Applies  func(Evidence) bool
}

// rules are the confidence heuristics in evaluation order. The strictest
// firing rule decides, so the order only affects the explanation.
var rules = []Rule{
	{
		Name:     "multiple-tone-marks",
		Severity: thai.ConfidenceMedium,
		Applies:  func(e Evidence) bool { return e.ToneMarks > 1 },
	},
	{
		Name:     "lexical-boundary",
		Severity: thai.ConfidenceMedium,
		Note:     "Multiple consonants without explicit vowels detected; syllable boundaries may be lexical.",
		Applies:  func(e Evidence) bool { return e.Consonants >= 2 && !e.InlineVowel },
	},
	{
		Name:     "no-initial",
		Severity: thai.ConfidenceLow,
		Applies:  func(e Evidence) bool { return !e.Initial },
	},
	{
		Name:     "implicit-vowel",
		Severity: thai.ConfidenceMedium,
		Applies:  func(e Evidence) bool { return !e.WrittenVowel && !e.MaiTaikhu },
	},
	{
		Name:     "cluster-override",
		Severity: thai.ConfidenceMedium,
		Applies:  func(e Evidence) bool { return e.ClusterOverride },
	},
	{
		Name:     "unknown-final-sound",
		Severity: thai.ConfidenceMedium,
		Applies:  func(e Evidence) bool { return e.Final && !e.FinalSoundKnown },
	},
}

// Assess applies every rule to e and returns the strictest severity along
// with the rules that fired.
func Assess(e Evidence) (thai.Confidence, []Rule) {
	confidence := thai.ConfidenceHigh
	var fired []Rule

	for _, r := range rules {
		if !r.Applies(e) {
			continue
		}
		fired = append(fired, r)
		confidence = thai.Max(confidence, r.Severity)
	}

	return confidence, fired
}
