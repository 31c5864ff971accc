package tone

import (
	"testing"

	"github.com/eNzyOfficial/gai-er/internal/thai"
	"github.com/stretchr/testify/assert"
)

func TestEvaluate_NoMark(t *testing.T) {
	tests := []struct {
		class  thai.Class
		live   bool
		length thai.VowelLength
		want   thai.Tone
	}{
		{thai.ClassMid, true, thai.Long, thai.ToneMid},
		{thai.ClassMid, false, thai.Short, thai.ToneLow},
		{thai.ClassMid, false, thai.Long, thai.ToneLow},
		{thai.ClassHigh, true, thai.Long, thai.ToneRising},
		{thai.ClassHigh, false, thai.Short, thai.ToneLow},
		{thai.ClassHigh, false, thai.Long, thai.ToneLow},
		{thai.ClassLow, true, thai.Long, thai.ToneMid},
		{thai.ClassLow, true, thai.Short, thai.ToneMid},
		{thai.ClassLow, false, thai.Short, thai.ToneHigh},
		{thai.ClassLow, false, thai.Long, thai.ToneFalling},
	}

	for _, tt := range tests {
		got := Evaluate(tt.class, 0, tt.live, tt.length)
		assert.Equal(t, tt.want, got, "%s live=%v %s", tt.class, tt.live, tt.length)
	}
}

func TestEvaluate_MarkTable(t *testing.T) {
	want := map[thai.Class]map[rune]thai.Tone{
		thai.ClassMid: {
			maiEk: thai.ToneLow, maiTho: thai.ToneFalling,
			maiTri: thai.ToneHigh, maiChattawa: thai.ToneRising,
		},
		thai.ClassHigh: {
			maiEk: thai.ToneLow, maiTho: thai.ToneFalling,
			maiTri: thai.ToneUnknown, maiChattawa: thai.ToneUnknown,
		},
		thai.ClassLow: {
			maiEk: thai.ToneFalling, maiTho: thai.ToneHigh,
			maiTri: thai.ToneUnknown, maiChattawa: thai.ToneUnknown,
		},
	}

	for class, marks := range want {
		for mark, tone := range marks {
			// The mark row ignores liveness and vowel length.
			for _, live := range []bool{true, false} {
				for _, length := range []thai.VowelLength{thai.Short, thai.Long} {
					got := Evaluate(class, mark, live, length)
					assert.Equal(t, tone, got, "%s + %q live=%v %s", class, mark, live, length)
				}
			}
		}
	}
}

func TestEvaluate_UnresolvedClass(t *testing.T) {
	for _, mark := range []rune{0, maiEk, maiTho, maiTri, maiChattawa} {
		assert.Equal(t, thai.ToneUnknown, Evaluate("", mark, true, thai.Long))
	}
}

func TestIsLive(t *testing.T) {
	stop := &thai.Grapheme{Character: "ก", FinalConsonant: "k"}
	nasal := &thai.Grapheme{Character: "ง", FinalConsonant: "ng"}
	glide := &thai.Grapheme{Character: "ว", FinalConsonant: "w"}
	silent := &thai.Grapheme{Character: "ห"}
	odd := &thai.Grapheme{Character: "?", FinalConsonant: "q"}

	tests := []struct {
		name   string
		length thai.VowelLength
		final  *thai.Grapheme
		want   bool
	}{
		{"no final long", thai.Long, nil, true},
		{"no final short", thai.Short, nil, false},
		{"stop beats long vowel", thai.Long, stop, false},
		{"nasal beats short vowel", thai.Short, nasal, true},
		{"glide", thai.Short, glide, true},
		{"unknown sound falls back to long", thai.Long, silent, true},
		{"unknown sound falls back to short", thai.Short, silent, false},
		{"unmatched code falls back", thai.Long, odd, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLive(tt.length, tt.final))
		})
	}
}

func TestClusterClass(t *testing.T) {
	tests := map[string]thai.Class{
		"กร": thai.ClassMid,
		"ตร": thai.ClassMid,
		"ศร": thai.ClassHigh,
		"ซร": thai.ClassLow,
	}
	for pair, want := range tests {
		got, ok := ClusterClass(pair)
		assert.True(t, ok, pair)
		assert.Equal(t, want, got, pair)
	}

	_, ok := ClusterClass("กล")
	assert.False(t, ok)
}
