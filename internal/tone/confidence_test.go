package tone

import (
	"testing"

	"github.com/eNzyOfficial/gai-er/internal/thai"
	"github.com/stretchr/testify/assert"
)

// clean is evidence on which no rule fires.
var clean = Evidence{
	Consonants:      1,
	InlineVowel:     true,
	Initial:         true,
	WrittenVowel:    true,
	Final:           true,
	FinalSoundKnown: true,
}

func TestAssess_Clean(t *testing.T) {
	c, fired := Assess(clean)
	assert.Equal(t, thai.ConfidenceHigh, c)
	assert.Empty(t, fired)
}

func TestAssess_EachRule(t *testing.T) {
	tests := []struct {
		rule   string
		mutate func(*Evidence)
		want   thai.Confidence
	}{
		{"multiple-tone-marks", func(e *Evidence) { e.ToneMarks = 2 }, thai.ConfidenceMedium},
		{"lexical-boundary", func(e *Evidence) { e.Consonants, e.InlineVowel = 2, false }, thai.ConfidenceMedium},
		{"no-initial", func(e *Evidence) { e.Initial = false }, thai.ConfidenceLow},
		{"implicit-vowel", func(e *Evidence) { e.WrittenVowel = false }, thai.ConfidenceMedium},
		{"cluster-override", func(e *Evidence) { e.ClusterOverride = true }, thai.ConfidenceMedium},
		{"unknown-final-sound", func(e *Evidence) { e.FinalSoundKnown = false }, thai.ConfidenceMedium},
	}

	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			e := clean
			tt.mutate(&e)

			c, fired := Assess(e)
			assert.Equal(t, tt.want, c)
			if assert.Len(t, fired, 1) {
				assert.Equal(t, tt.rule, fired[0].Name)
			}
		})
	}
}

func TestAssess_MaiTaikhuExcusesMissingVowel(t *testing.T) {
	e := clean
	e.WrittenVowel = false
	e.MaiTaikhu = true

	c, _ := Assess(e)
	assert.Equal(t, thai.ConfidenceHigh, c)
}

func TestAssess_StrictestWins(t *testing.T) {
	// no-initial (low) fires before the medium rules; they must not raise it back.
	e := Evidence{
		ToneMarks:       3,
		Consonants:      2,
		Initial:         false,
		Final:           true,
		FinalSoundKnown: false,
	}

	c, fired := Assess(e)
	assert.Equal(t, thai.ConfidenceLow, c)
	assert.GreaterOrEqual(t, len(fired), 4)
}

func TestMax(t *testing.T) {
	assert.Equal(t, thai.ConfidenceMedium, thai.Max(thai.ConfidenceHigh, thai.ConfidenceMedium))
	assert.Equal(t, thai.ConfidenceLow, thai.Max(thai.ConfidenceLow, thai.ConfidenceMedium))
	assert.Equal(t, thai.ConfidenceLow, thai.Max(thai.ConfidenceMedium, thai.ConfidenceLow))
	assert.Equal(t, thai.ConfidenceHigh, thai.Max(thai.ConfidenceHigh, thai.ConfidenceHigh))
}
