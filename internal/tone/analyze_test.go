package tone

import (
	"context"
	"strings"
	"testing"

	"github.com/eNzyOfficial/gai-er/internal/alphabet"
	"github.com/eNzyOfficial/gai-er/internal/thai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzeOne(t *testing.T, text string) thai.ToneAnalysis {
	t.Helper()
	results, err := Analyze(text, alphabet.Default())
	require.NoError(t, err)
	require.Len(t, results, 1, "expected %q to be one syllable", text)
	return results[0]
}

func assertExplains(t *testing.T, r thai.ToneAnalysis, fragments ...string) {
	t.Helper()
	joined := strings.Join(r.Explanation, "\n")
	for _, f := range fragments {
		assert.Contains(t, joined, f)
	}
}

func TestAnalyze_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		class      thai.Class
		live       bool
		length     thai.VowelLength
		tone       thai.Tone
		confidence thai.Confidence
		explains   []string
	}{
		{
			name: "mid class long vowel open", text: "กา",
			class: thai.ClassMid, live: true, length: thai.Long, tone: thai.ToneMid,
			confidence: thai.ConfidenceHigh,
			explains:   []string{`"ก" is mid class`, "Syllable is live"},
		},
		{
			name: "mid class with mai ek", text: "ก่า",
			class: thai.ClassMid, live: true, length: thai.Long, tone: thai.ToneLow,
			confidence: thai.ConfidenceHigh,
			explains:   []string{`"ก" is mid class`, "Syllable is live", `Tone mark "่"`},
		},
		{
			name: "low class sonorant final", text: "งาม",
			class: thai.ClassLow, live: true, length: thai.Long, tone: thai.ToneMid,
			confidence: thai.ConfidenceHigh,
			explains:   []string{`"ง" is low class`, "Syllable is live", `Sonorant final "ม"`},
		},
		{
			name: "high class stop final", text: "ขาด",
			class: thai.ClassHigh, live: false, length: thai.Long, tone: thai.ToneLow,
			confidence: thai.ConfidenceHigh,
			explains:   []string{`"ข" is high class`, "Syllable is dead", `Stop final "ด"`},
		},
		{
			name: "low class implicit vowel stop final", text: "นก",
			class: thai.ClassLow, live: false, length: thai.Short, tone: thai.ToneHigh,
			confidence: thai.ConfidenceMedium,
			explains:   []string{`"น" is low class`, "Syllable is dead", "implicit short vowel"},
		},
		{
			name: "ho nam promotes low to high", text: "หมา",
			class: thai.ClassHigh, live: true, length: thai.Long, tone: thai.ToneRising,
			confidence: thai.ConfidenceHigh,
			explains:   []string{"Ho nam", `"ม" is high class`},
		},
		{
			name: "o nam defers to the second consonant", text: "อยู่",
			class: thai.ClassLow, live: true, length: thai.Long, tone: thai.ToneFalling,
			confidence: thai.ConfidenceHigh,
			explains:   []string{"O nam", `"ย" is low class`, "different tone-mark table"},
		},
		{
			name: "sanskrit cluster overrides class", text: "ตรา",
			class: thai.ClassMid, live: true, length: thai.Long, tone: thai.ToneMid,
			confidence: thai.ConfidenceMedium,
			explains:   []string{`Consonant cluster "ตร"`},
		},
		{
			name: "mai taikhu forces short", text: "เก็บ",
			class: thai.ClassMid, live: false, length: thai.Short, tone: thai.ToneLow,
			confidence: thai.ConfidenceHigh,
			explains:   []string{"Mai taikhu", `Stop final "บ"`},
		},
		{
			name: "silent final removed", text: "สัตว์",
			class: thai.ClassHigh, live: false, length: thai.Short, tone: thai.ToneLow,
			confidence: thai.ConfidenceMedium,
			explains:   []string{"Silent consonant", `Stop final "ต"`},
		},
		{
			name: "final without a sound code", text: "กาห",
			class: thai.ClassMid, live: true, length: thai.Long, tone: thai.ToneMid,
			confidence: thai.ConfidenceMedium,
			explains:   []string{`Final "ห" has no known sound`},
		},
		{
			name: "two tone marks keep the first", text: "ก่้า",
			class: thai.ClassMid, live: true, length: thai.Long, tone: thai.ToneLow,
			confidence: thai.ConfidenceMedium,
			explains:   []string{"Only the first tone mark"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := analyzeOne(t, tt.text)

			assert.Equal(t, tt.text, r.Syllable)
			assert.Equal(t, tt.class, r.ConsonantClass)
			assert.Equal(t, tt.live, r.IsLive)
			assert.Equal(t, tt.length, r.VowelLength)
			assert.Equal(t, tt.tone, r.Tone)
			assert.Equal(t, tt.confidence, r.Confidence)
			assertExplains(t, r, tt.explains...)
		})
	}
}

func TestAnalyze_RoHan(t *testing.T) {
	r := analyzeOne(t, "สรรพ")

	require.NotNil(t, r.Vowel)
	assert.True(t, r.Vowel.IsSynthesized())
	_, ok := r.Vowel.Record()
	assert.False(t, ok)

	require.NotNil(t, r.FinalConsonant)
	assert.Equal(t, "พ", r.FinalConsonant.Character)
	assert.Equal(t, thai.Short, r.VowelLength)
	assert.False(t, r.IsLive)
	assert.Equal(t, thai.ToneLow, r.Tone)
	assertExplains(t, r, "ro han")
}

func TestAnalyze_FinalClusterCollapsed(t *testing.T) {
	r := analyzeOne(t, "เก็บ")

	require.NotNil(t, r.FinalConsonant)
	assert.Equal(t, "บ", r.FinalConsonant.Character)
	assertExplains(t, r, "collapsed")
}

func TestAnalyze_SynthesizedToneMark(t *testing.T) {
	cat := alphabet.New([]thai.Grapheme{
		{Character: "ก", Name: "ko kai", Class: thai.ClassMid, Type: thai.TypeConsonant, FinalConsonant: "k"},
		{Character: "◌า", Name: "sara aa", Type: thai.TypeVowel},
	})

	results, err := Analyze("ก่า", cat)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	require.NotNil(t, r.ToneMark)
	assert.True(t, r.ToneMark.IsSynthesized())
	assert.Equal(t, "่", r.ToneMark.Character)
	assert.Equal(t, thai.ToneLow, r.Tone)
}

func TestAnalyze_ResolvedToneMark(t *testing.T) {
	r := analyzeOne(t, "ก้า")

	require.NotNil(t, r.ToneMark)
	g, ok := r.ToneMark.Record()
	require.True(t, ok)
	assert.Equal(t, "mai tho", g.Name)
	assert.Equal(t, thai.ToneFalling, r.Tone)
}

func TestAnalyze_NoInitial(t *testing.T) {
	r := analyzeOne(t, "abc")

	assert.Nil(t, r.InitialConsonant)
	assert.Empty(t, r.ConsonantClass)
	assert.Equal(t, thai.ToneUnknown, r.Tone)
	assert.Equal(t, thai.ConfidenceLow, r.Confidence)
	assert.Equal(t, thai.Short, r.VowelLength)
	assertExplains(t, r, "Unable to determine the initial consonant")
	assert.Equal(t, "unknown", r.RuleTrace[0].Value)
}

func TestAnalyze_RuleTrace(t *testing.T) {
	r := analyzeOne(t, "ก่า")

	ids := make([]string, len(r.RuleTrace))
	for i, s := range r.RuleTrace {
		ids[i] = s.ID
	}
	assert.Equal(t, []string{"initial-class", "tone-mark", "live-dead", "vowel-length", "tone"}, ids)
	assert.Equal(t, "mid", r.RuleTrace[0].Value)
	assert.Equal(t, "่", r.RuleTrace[1].Value)
	assert.Equal(t, "live", r.RuleTrace[2].Value)
	assert.Equal(t, "long", r.RuleTrace[3].Value)
	assert.Equal(t, "Low", r.RuleTrace[4].Value)
}

func TestAnalyze_MultiSyllableDowngrade(t *testing.T) {
	results, err := Analyze("มาลี", alphabet.Default())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "มา", results[0].Syllable)
	assert.Equal(t, "ลี", results[1].Syllable)
	for _, r := range results {
		assert.Equal(t, thai.ConfidenceMedium, r.Confidence)
	}

	// Each syllable on its own is unambiguous.
	assert.Equal(t, thai.ConfidenceHigh, AnalyzeSyllable("มา", alphabet.Default()).Confidence)
}

func TestAnalyze_EmptyAndMissingCatalog(t *testing.T) {
	results, err := Analyze("", alphabet.Default())
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = Analyze("กา", nil)
	assert.ErrorIs(t, err, ErrNoCatalog)
}

func TestAnalyze_Properties(t *testing.T) {
	cat := alphabet.Default()
	inputs := []string{"กา", "มาลีไปมา", "สวัสดีครับ", "นกกก", "abc", "\xffก่้า", "เก็บสัตว์สรรพ"}

	for _, in := range inputs {
		first, err := Analyze(in, cat)
		require.NoError(t, err)
		second, err := Analyze(in, cat)
		require.NoError(t, err)
		assert.Equal(t, first, second, "determinism for %q", in)

		var joined strings.Builder
		for _, r := range first {
			joined.WriteString(r.Syllable)
			assert.NotEmpty(t, r.VowelLength)
			if len(first) > 1 {
				assert.NotEqual(t, thai.ConfidenceHigh, r.Confidence)
			}
			if r.Tone == thai.ToneUnknown && r.ToneMark == nil {
				assert.Empty(t, r.ConsonantClass)
			}
		}
		assert.Equal(t, in, joined.String())
	}
}

func TestAnalyzeAll(t *testing.T) {
	texts := []string{"กา", "ขาด", "", "มาลี"}

	out, err := AnalyzeAll(context.Background(), texts, alphabet.Default(), 2)
	require.NoError(t, err)
	require.Len(t, out, len(texts))

	assert.Equal(t, thai.ToneMid, out[0][0].Tone)
	assert.Equal(t, thai.ToneLow, out[1][0].Tone)
	assert.Empty(t, out[2])
	assert.Len(t, out[3], 2)
}

func TestAnalyzeAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := AnalyzeAll(ctx, []string{"กา", "ขา"}, alphabet.Default(), 1)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = AnalyzeAll(context.Background(), []string{"กา"}, nil, 1)
	assert.ErrorIs(t, err, ErrNoCatalog)
}

func TestEffectiveChars(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		changed bool
	}{
		{"กา", "กา", false},
		{"สัตว์", "สัต", true},
		{"จันทร์", "จันท", true},
		{"์ก", "์ก", false},
		{"ก์์", "ก", true},
		{"ก์ข์", "", true},
	}

	for _, tt := range tests {
		got, changed := effectiveChars([]rune(tt.in))
		assert.Equal(t, tt.want, string(got), tt.in)
		assert.Equal(t, tt.changed, changed, tt.in)
	}
}
