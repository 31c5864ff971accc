package anki

import (
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/eNzyOfficial/gai-er/internal/thai"
)

// ToneData is the tone information written into one note. Multi-syllable
// values are space separated in syllable order.
type ToneData struct {
	Tone        string `json:"tone"`
	Class       string `json:"class"`
	LiveDead    string `json:"live_dead"`
	Confidence  string `json:"confidence"`
	Explanation string `json:"explanation"` // HTML
}

func (d ToneData) values() []string {
	return []string{d.Tone, d.Class, d.LiveDead, d.Confidence, d.Explanation}
}

// ToneDataFrom joins the per-syllable analyses of one field value. The
// confidence is the strictest of the syllables.
func ToneDataFrom(results []thai.ToneAnalysis) ToneData {
	if len(results) == 0 {
		return ToneData{}
	}

	var (
		tones, classes, liveness []string
		explanation             strings.Builder
		confidence              = thai.ConfidenceHigh
	)
	for i, r := range results {
		tones = append(tones, string(r.Tone))

		class := string(r.ConsonantClass)
		if class == "" {
			class = "?"
		}
		classes = append(classes, class)

		if r.IsLive {
			liveness = append(liveness, "live")
		} else {
			liveness = append(liveness, "dead")
		}

		confidence = thai.Max(confidence, r.Confidence)

		if i > 0 {
			explanation.WriteString("<br>")
		}
		fmt.Fprintf(&explanation, "<b>%s</b>: ", html.EscapeString(r.Syllable))
		explanation.WriteString(html.EscapeString(strings.Join(r.Explanation, " ")))
	}

	return ToneData{
		Tone:        strings.Join(tones, " "),
		Class:       strings.Join(classes, " "),
		LiveDead:    strings.Join(liveness, " "),
		Confidence:  string(confidence),
		Explanation: explanation.String(),
	}
}

// detectSample is how many notes DetectThaiField looks at.
const detectSample = 10

// DetectThaiField returns the name of the first field holding Thai script
// among the first few notes, or "" if there is none.
func (p *Package) DetectThaiField() string {
	for i, note := range p.Notes {
		if i >= detectSample {
			break
		}
		names := p.FieldNames(note)
		for j, value := range note.Fields {
			if j < len(names) && ContainsThai(StripHTML(value)) {
				return names[j]
			}
		}
	}
	return ""
}

// ContainsThai reports whether s holds a character from the Thai block.
func ContainsThai(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return r >= 0x0E01 && r <= 0x0E5B
	})
}

var (
	breakPattern = regexp.MustCompile(`(?i)<br\s*/?>|</?(div|p|li|tr|td)\b[^>]*>`)
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	soundPattern = regexp.MustCompile(`\[sound:[^\]]*\]`)
)

// StripHTML removes markup, sound references and entities from a field
// value. Line-level tags become spaces; inline tags vanish so a word split
// by formatting stays whole.
func StripHTML(s string) string {
	s = breakPattern.ReplaceAllString(s, " ")
	s = tagPattern.ReplaceAllString(s, "")
	s = soundPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// OutputPath derives the augmented deck path, e.g. deck.apkg becomes
// deck_tones.apkg for suffix "_tones".
func OutputPath(input, suffix string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + suffix + ext
}
