package anki

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/eNzyOfficial/gai-er/internal/anki/ankitest"
	"github.com/eNzyOfficial/gai-er/internal/thai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	return ankitest.WriteDeck(t)
}

func TestOpenPackage(t *testing.T) {
	pkg, err := OpenPackage(writeFixture(t))
	require.NoError(t, err)
	defer pkg.Close()

	assert.Len(t, pkg.Models, 1)
	assert.Len(t, pkg.Decks, 2)
	require.Len(t, pkg.Notes, 2)
	assert.Len(t, pkg.Cards, 2)

	note := pkg.NoteByID(2)
	require.NotNil(t, note)
	assert.Equal(t, "มาลี", pkg.FieldValue(note, "front"))
	assert.Equal(t, "jasmine", pkg.FieldValue(note, "Meaning"))
	assert.Empty(t, pkg.FieldValue(note, "Nope"))
	assert.Equal(t, []string{"Front", "Meaning"}, pkg.FieldNames(note))
	assert.Nil(t, pkg.NoteByID(99))

	assert.Equal(t, "Thai", pkg.Deck(pkg.Cards[0]).Name)

	summary := pkg.Summary()
	assert.Contains(t, summary, "Notes: 2")
	assert.Contains(t, summary, "Thai Basic (2 fields)")
}

func TestOpenPackage_Errors(t *testing.T) {
	_, err := OpenPackage(filepath.Join(t.TempDir(), "missing.apkg"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.apkg")
	f, err := os.Create(empty)
	require.NoError(t, err)
	require.NoError(t, zip.NewWriter(f).Close())
	require.NoError(t, f.Close())

	_, err = OpenPackage(empty)
	assert.Error(t, err)
}

func TestDetectThaiField(t *testing.T) {
	pkg, err := OpenPackage(writeFixture(t))
	require.NoError(t, err)
	defer pkg.Close()

	assert.Equal(t, "Front", pkg.DetectThaiField())
}

func TestAugmentRoundTrip(t *testing.T) {
	pkg, err := OpenPackage(writeFixture(t))
	require.NoError(t, err)

	added, err := pkg.AddToneFields(ankitest.ModelID)
	require.NoError(t, err)
	assert.Equal(t, len(ToneFields), added)

	added, err = pkg.AddToneFields(ankitest.ModelID)
	require.NoError(t, err)
	assert.Zero(t, added)

	_, err = pkg.AddToneFields(42)
	assert.Error(t, err)

	data := ToneData{Tone: "Mid", Class: "mid", LiveDead: "live", Confidence: "high", Explanation: "ok"}
	require.NoError(t, pkg.SetToneData(pkg.NoteByID(1), data))

	out := filepath.Join(t.TempDir(), "out.apkg")
	require.NoError(t, pkg.SaveAs(out))
	require.NoError(t, pkg.Close())

	reopened, err := OpenPackage(out)
	require.NoError(t, err)
	defer reopened.Close()

	note := reopened.NoteByID(1)
	require.NotNil(t, note)
	assert.Equal(t, "Mid", reopened.FieldValue(note, "Tone"))
	assert.Equal(t, "live", reopened.FieldValue(note, "Tone_LiveDead"))
	assert.Equal(t, "ok", reopened.FieldValue(note, "Tone_Explanation"))
	assert.Equal(t, "crow", reopened.FieldValue(note, "Meaning"))
	assert.NotZero(t, note.CSum)

	model := reopened.Models[ankitest.ModelID]
	require.NotNil(t, model)
	assert.Len(t, model.Fields, 2+len(ToneFields))

	var tmpls []map[string]any
	require.NoError(t, json.Unmarshal(model.raw["tmpls"], &tmpls))
	assert.Equal(t, "{{Front}}", tmpls[0]["qfmt"])
}

func TestSetToneData_MissingFields(t *testing.T) {
	pkg, err := OpenPackage(writeFixture(t))
	require.NoError(t, err)
	defer pkg.Close()

	err = pkg.SetToneData(pkg.NoteByID(1), ToneData{Tone: "Mid"})
	assert.Error(t, err)
}

func TestToneDataFrom(t *testing.T) {
	assert.Equal(t, ToneData{}, ToneDataFrom(nil))

	results := []thai.ToneAnalysis{
		{
			Syllable: "มา", ConsonantClass: thai.ClassLow, IsLive: true,
			Tone: thai.ToneMid, Confidence: thai.ConfidenceMedium,
			Explanation: []string{"a", "b"},
		},
		{
			Syllable: "<x>", Tone: thai.ToneUnknown, Confidence: thai.ConfidenceLow,
			Explanation: []string{"c"},
		},
	}

	data := ToneDataFrom(results)
	assert.Equal(t, "Mid Unknown", data.Tone)
	assert.Equal(t, "low ?", data.Class)
	assert.Equal(t, "live dead", data.LiveDead)
	assert.Equal(t, "low", data.Confidence)
	assert.Equal(t, "<b>มา</b>: a b<br><b>&lt;x&gt;</b>: c", data.Explanation)
}

func TestStripHTML(t *testing.T) {
	tests := []struct{ in, want string }{
		{"<b>ก</b>า", "กา"},
		{"มา<br>ลี", "มา ลี"},
		{"<div>one</div><div>two</div>", "one two"},
		{"ไป&nbsp;มา [sound:x.mp3]", "ไป มา"},
		{"  plain  ", "plain"},
		{"a &amp; b", "a & b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripHTML(tt.in), tt.in)
	}
}

func TestContainsThai(t *testing.T) {
	assert.True(t, ContainsThai("hello ก"))
	assert.True(t, ContainsThai("๕"))
	assert.False(t, ContainsThai("hello"))
	assert.False(t, ContainsThai(""))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "/decks/thai_tones.apkg", OutputPath("/decks/thai.apkg", "_tones"))
	assert.Equal(t, "deck-x", OutputPath("deck", "-x"))
}
