// Package tone derives the spoken tone of written Thai syllables from
// orthographic rules alone and explains how it got there.
//
// The engine is a pure function of its two inputs, the text and the
// alphabet catalog. It keeps no state between calls.
package tone

import (
	"context"
	"errors"
	"fmt"

	"github.com/eNzyOfficial/gai-er/internal/alphabet"
	"github.com/eNzyOfficial/gai-er/internal/thai"
	"golang.org/x/sync/errgroup"
)

// ErrNoCatalog is returned when the caller does not pass a catalog.
var ErrNoCatalog = errors.New("tone: catalog not supplied")

// Analyze segments text into syllables and analyses each of them. Results
// are in input order. Empty text gives an empty result.
//
// When the text splits into more than one syllable no result keeps a high
// confidence, since the boundaries themselves are a guess.
func Analyze(text string, catalog *alphabet.Catalog) ([]thai.ToneAnalysis, error) {
	if catalog == nil {
		return nil, ErrNoCatalog
	}

	syllables := Segment(text)
	results := make([]thai.ToneAnalysis, 0, len(syllables))

	for _, s := range syllables {
		r := AnalyzeSyllable(s, catalog)
		if len(syllables) > 1 {
			r.Confidence = thai.Max(r.Confidence, thai.ConfidenceMedium)
		}
		results = append(results, r)
	}

	return results, nil
}

// AnalyzeAll analyses independent texts concurrently, at most workers at a
// time (no limit when workers <= 0). The outer slice matches texts.
func AnalyzeAll(ctx context.Context, texts []string, catalog *alphabet.Catalog, workers int) ([][]thai.ToneAnalysis, error) {
	if catalog == nil {
		return nil, ErrNoCatalog
	}

	out := make([][]thai.ToneAnalysis, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Analyze(text, catalog)
			if err != nil {
				return fmt.Errorf("analysing text %d: %w", i, err)
			}
			out[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// AnalyzeSyllable runs the rule pipeline on a single syllable. It never
// fails: anything it cannot resolve is left empty, noted in the explanation
// and reflected in the confidence.
func AnalyzeSyllable(syllable string, catalog *alphabet.Catalog) thai.ToneAnalysis {
	chars := []rune(syllable)
	var explanation []string

	// Tone marks
	mark, markRune, markCount := scanToneMarks(chars, catalog)
	if mark != nil {
		explanation = append(explanation, fmt.Sprintf("Tone mark %s is present.", describeSign(mark)))
		if markCount > 1 {
			explanation = append(explanation, "Only the first tone mark is used for tone calculation.")
		}
	}

	// Initial consonant
	onset := resolveInitial(chars, catalog)
	if onset.note != "" {
		explanation = append(explanation, onset.note)
	}
	if onset.consonant != nil {
		explanation = append(explanation, fmt.Sprintf("Initial consonant %q is %s class.", onset.consonant.Character, onset.class))
	}

	eff, silenced := effectiveChars(chars)
	if silenced {
		explanation = append(explanation, "Silent consonant (การันต์) removed from pronunciation.")
	}

	// Vowel
	vowel, vowelIndex := resolveVowel(eff, catalog)
	if vowel != nil {
		if vowel.IsSynthesized() {
			explanation = append(explanation, `รร (ro han) → short "a" vowel.`)
		} else {
			explanation = append(explanation, fmt.Sprintf("Vowel %s detected.", describeSign(vowel)))
		}
	} else {
		vowelIndex = onset.offset
	}

	// Final consonant
	final, cluster := resolveFinal(eff, vowelIndex, catalog)
	if len(cluster) > 1 {
		explanation = append(explanation, fmt.Sprintf("Final consonant cluster %q collapsed to %q for tone calculation.",
			joinChars(cluster), final.Character))
	}

	// Vowel length
	length := thai.Short
	if vowel != nil && !vowel.IsShort {
		length = thai.Long
	}
	taikhu := containsRune(chars, maiTaikhu)
	if taikhu {
		length = thai.Short
		explanation = append(explanation, "Mai taikhu (็) forces a short vowel.")
	}
	if vowel == nil {
		explanation = append(explanation, "No written vowel → implicit short vowel.")
	}

	// Live / dead
	live := IsLive(length, final)
	if live {
		explanation = append(explanation, "Syllable is live (long vowel or sonorant final).")
	} else {
		explanation = append(explanation, "Syllable is dead (short vowel or stop final).")
	}
	switch classifyFinal(final) {
	case finalLive:
		explanation = append(explanation, fmt.Sprintf("Sonorant final %q keeps the syllable live.", final.Character))
	case finalDead:
		explanation = append(explanation, fmt.Sprintf("Stop final %q makes the syllable dead.", final.Character))
	default:
		if final != nil {
			explanation = append(explanation, fmt.Sprintf("Final %q has no known sound; vowel length decides.", final.Character))
		}
	}

	// Tone
	tone := Evaluate(onset.class, markRune, live, length)
	explanation = append(explanation, describeRule(onset.class, mark, live, length, tone))
	if onset.class == thai.ClassLow && mark != nil {
		explanation = append(explanation, "Low-class consonants use a different tone-mark table.")
	}

	trace := []thai.RuleStep{
		{ID: "initial-class", Label: "Initial consonant class", Value: valueOr(string(onset.class), "unknown")},
		{ID: "tone-mark", Label: "Tone mark", Value: markValue(mark)},
		{ID: "live-dead", Label: "Syllable type", Value: liveValue(live)},
		{ID: "vowel-length", Label: "Vowel length", Value: string(length)},
		{ID: "tone", Label: "Tone", Value: string(tone)},
	}

	// Confidence
	confidence, fired := Assess(Evidence{
		ToneMarks:       markCount,
		Consonants:      countFunc(chars, isConsonant),
		InlineVowel:     countFunc(chars, isInlineVowel) > 0,
		Initial:         onset.consonant != nil,
		WrittenVowel:    vowel != nil,
		MaiTaikhu:       taikhu,
		ClusterOverride: onset.via == viaCluster,
		Final:           final != nil,
		FinalSoundKnown: final != nil && final.FinalConsonant != "",
	})
	for _, r := range fired {
		if r.Note != "" {
			explanation = append(explanation, r.Note)
		}
	}

	return thai.ToneAnalysis{
		Syllable:         syllable,
		InitialConsonant: onset.consonant,
		Vowel:            vowel,
		FinalConsonant:   final,
		ToneMark:         mark,
		ConsonantClass:   onset.class,
		VowelLength:      length,
		IsLive:           live,
		Tone:             tone,
		Explanation:      explanation,
		RuleTrace:        trace,
		Confidence:       confidence,
	}
}

func describeRule(class thai.Class, mark *thai.Sign, live bool, length thai.VowelLength, tone thai.Tone) string {
	if !class.Valid() {
		return "Consonant class unknown → tone cannot be derived."
	}

	cls := capitalize(string(class))
	switch {
	case mark != nil:
		return fmt.Sprintf("%s class + Tone mark %q = %s tone.", cls, mark.Character, tone)
	case class == thai.ClassLow && !live:
		return fmt.Sprintf("Low class + Dead + %s vowel = %s tone.", capitalize(string(length)), tone)
	default:
		return fmt.Sprintf("%s class + No tone mark + %s = %s tone.", cls, capitalize(liveValue(live)), tone)
	}
}

func markValue(mark *thai.Sign) string {
	if mark == nil {
		return "none"
	}
	return mark.Character
}

func liveValue(live bool) string {
	if live {
		return "live"
	}
	return "dead"
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

func countFunc(chars []rune, f func(rune) bool) int {
	n := 0
	for _, r := range chars {
		if f(r) {
			n++
		}
	}
	return n
}
