package tone

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"single open syllable", "กา", []string{"กา"}},
		{"two open syllables", "มาลี", []string{"มา", "ลี"}},
		{"leading vowel then onset", "ไปมา", []string{"ไป", "มา"}},
		{"leading vowel stays with its consonant", "เก็บ", []string{"เก็บ"}},
		{"closed syllable before onset", "ดีมาก", []string{"ดี", "มาก"}},
		{"no split without a following vowel", "กินข้าว", []string{"กินข้าว"}},
		{"no vowel never splits", "นกกก", []string{"นกกก"}},
		{"non-thai text", "hello", []string{"hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segment(tt.text))
		})
	}
}

func TestSegment_ReconstructsInput(t *testing.T) {
	inputs := []string{
		"",
		"กา",
		"มาลีไปมาดีมาก",
		"สวัสดีครับ",
		"abc กา 123",
		"\xffกา\xfe",
		"เก็บจันทร์สรรพ",
		"่่่",
	}

	for _, in := range inputs {
		got := Segment(in)
		assert.Equal(t, in, strings.Join(got, ""), "segments of %q", in)
		for _, s := range got {
			assert.NotEmpty(t, s)
		}
	}
}
