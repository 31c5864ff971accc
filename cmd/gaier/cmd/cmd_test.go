package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eNzyOfficial/gai-er/internal/alphabet"
	"github.com/eNzyOfficial/gai-er/internal/anki"
	"github.com/eNzyOfficial/gai-er/internal/anki/ankitest"
	"github.com/eNzyOfficial/gai-er/internal/config"
	"github.com/eNzyOfficial/gai-er/internal/thai"
	"github.com/eNzyOfficial/gai-er/internal/tone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func analyses(t *testing.T, texts ...string) []TextAnalysis {
	t.Helper()
	out := make([]TextAnalysis, len(texts))
	for i, text := range texts {
		res, err := tone.Analyze(text, alphabet.Default())
		require.NoError(t, err)
		out[i] = TextAnalysis{Text: text, Syllables: res}
	}
	return out
}

func TestWriteAnalyses_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeAnalyses(&buf, config.FormatText, analyses(t, "มาลี", "ไม้"), false))

	out := buf.String()
	assert.Contains(t, out, "มาลี")
	assert.Contains(t, out, "ลี")
	assert.Contains(t, out, string(thai.ToneHigh))
	assert.Contains(t, out, "confidence medium")
	assert.NotContains(t, out, "[", "no rule trace unless asked")
}

func TestWriteAnalyses_Trace(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeAnalyses(&buf, config.FormatText, analyses(t, "กา"), true))
	assert.Contains(t, buf.String(), "[")
}

func TestWriteAnalyses_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeAnalyses(&buf, config.FormatText, []TextAnalysis{{Text: ""}}, false))
	assert.Contains(t, buf.String(), "nothing to analyze")
}

func TestWriteAnalyses_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeAnalyses(&buf, config.FormatJSON, analyses(t, "มาลี"), false))

	var decoded []TextAnalysis
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	require.Len(t, decoded[0].Syllables, 2)
	assert.Equal(t, "มา", decoded[0].Syllables[0].Syllable)
	assert.Equal(t, thai.ToneMid, decoded[0].Syllables[0].Tone)
}

func TestWriteAnalyses_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeAnalyses(&buf, config.FormatYAML, analyses(t, "ไม้"), false))

	var decoded []TextAnalysis
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	require.Len(t, decoded[0].Syllables, 1)
	assert.Equal(t, thai.ToneHigh, decoded[0].Syllables[0].Tone)
}

func TestWriteAnalyses_UnknownFormat(t *testing.T) {
	err := writeAnalyses(&bytes.Buffer{}, "xml", nil, false)
	assert.ErrorContains(t, err, "unknown format")
}

func TestParseGroup(t *testing.T) {
	g, err := parseGroup("live-dead")
	require.NoError(t, err)
	assert.Equal(t, thai.GroupLiveDead, g)

	g, err = parseGroup("Class")
	require.NoError(t, err)
	assert.Equal(t, thai.GroupClass, g)

	_, err = parseGroup("tones")
	assert.ErrorContains(t, err, "consonant")
}

func TestWriteRecords(t *testing.T) {
	records := alphabet.Default().Group(thai.GroupConsonant)

	var buf bytes.Buffer
	require.NoError(t, writeRecords(&buf, config.FormatText, records))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "Char"))
	assert.Contains(t, buf.String(), "ก")
	assert.Contains(t, lines[len(lines)-1], "records")

	buf.Reset()
	require.NoError(t, writeRecords(&buf, config.FormatJSON, records))
	var decoded []thai.Grapheme
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, records, decoded)

	assert.Error(t, writeRecords(&buf, "csv", records))
}

func TestInitConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gai-er")

	created, err := initConfigDir(dir, false)
	require.NoError(t, err)
	assert.Equal(t, []string{config.FileName, catalogFileName}, created)
	assert.DirExists(t, filepath.Join(dir, "anki"))

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, catalogFileName), cfg.Catalog)

	cat, err := loadCatalog(cfg.Catalog)
	require.NoError(t, err)
	assert.Equal(t, alphabet.Default().Len(), cat.Len())

	_, err = initConfigDir(dir, false)
	assert.ErrorContains(t, err, "already exists")

	_, err = initConfigDir(dir, true)
	assert.NoError(t, err)
}

func TestLoadCatalog(t *testing.T) {
	cat, err := loadCatalog("")
	require.NoError(t, err)
	assert.Positive(t, cat.Len())

	_, err = loadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "catalog.txt")
	require.NoError(t, os.WriteFile(bad, []byte("x"), 0o644))
	_, err = loadCatalog(bad)
	assert.ErrorIs(t, err, alphabet.ErrUnknownFormat)
}

func TestWriteInspection(t *testing.T) {
	pkg, err := anki.OpenPackage(ankitest.WriteDeck(t))
	require.NoError(t, err)
	defer pkg.Close()

	var buf bytes.Buffer
	writeInspection(&buf, pkg, 1)

	out := buf.String()
	assert.Contains(t, out, "Thai Basic:")
	assert.Contains(t, out, "[1] Meaning")
	assert.Contains(t, out, "Thai text found in field: Front")
	assert.Contains(t, out, "Front: กา")
	assert.NotContains(t, out, "jasmine", "limit respected")
}

func TestAugment(t *testing.T) {
	path := ankitest.WriteDeck(t,
		ankitest.Note{Front: "<b>ก</b>า", Meaning: "crow"},
		ankitest.Note{Front: "hello", Meaning: "no thai"},
		ankitest.Note{Front: "มาลี", Meaning: "jasmine"},
	)

	pkg, err := anki.OpenPackage(path)
	require.NoError(t, err)

	results, err := augmentNotes(context.Background(), pkg, alphabet.Default(), "Front", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, int64(1), results[0].NoteID)
	assert.Equal(t, "กา", results[0].Text)
	assert.Equal(t, "Mid", results[0].Tone.Tone)
	assert.Equal(t, "crow", results[0].Original["Meaning"])

	assert.Equal(t, int64(3), results[1].NoteID)
	assert.Equal(t, "Mid Mid", results[1].Tone.Tone)
	assert.Equal(t, "medium", results[1].Tone.Confidence)

	out := filepath.Join(t.TempDir(), "out.apkg")
	require.NoError(t, writeAugmentedApkg(pkg, results, out))
	require.NoError(t, pkg.Close())

	augmented, err := anki.OpenPackage(out)
	require.NoError(t, err)
	defer augmented.Close()

	note := augmented.NoteByID(3)
	require.NotNil(t, note)
	assert.Equal(t, "Mid Mid", augmented.FieldValue(note, "Tone"))
	assert.Equal(t, "low low", augmented.FieldValue(note, "Tone_Class"))
	assert.Equal(t, "live live", augmented.FieldValue(note, "Tone_LiveDead"))

	skipped := augmented.NoteByID(2)
	require.NotNil(t, skipped)
	assert.Empty(t, augmented.FieldValue(skipped, "Tone"))
}

func TestAugment_Cancelled(t *testing.T) {
	pkg, err := anki.OpenPackage(ankitest.WriteDeck(t))
	require.NoError(t, err)
	defer pkg.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = augmentNotes(ctx, pkg, alphabet.Default(), "Front", 1)
	assert.ErrorIs(t, err, context.Canceled)
}
