package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/eNzyOfficial/gai-er/internal/alphabet"
	"github.com/eNzyOfficial/gai-er/internal/anki"
	"github.com/eNzyOfficial/gai-er/internal/thai"
	"github.com/eNzyOfficial/gai-er/internal/tone"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Augment output formats.
const (
	augmentJSON = "json"
	augmentApkg = "apkg"
)

// AugmentedNote holds the tone analysis of one note.
type AugmentedNote struct {
	NoteID    int64               `json:"note_id"`
	Text      string              `json:"text"`
	Original  map[string]string   `json:"original_fields"`
	Tone      anki.ToneData       `json:"tone"`
	Syllables []thai.ToneAnalysis `json:"syllables"`
}

var ankiCmd = &cobra.Command{
	Use:   "anki",
	Short: "Work with Anki decks",
	Long:  `Commands for reading Anki .apkg files and adding tone fields to their notes.`,
}

var ankiInspectCmd = &cobra.Command{
	Use:   "inspect <file.apkg>",
	Short: "Inspect an Anki deck",
	Long: `Inspect an Anki .apkg file to see its structure:
  - Decks
  - Note types (models) and their fields
  - Sample notes

Example:
  gaier anki inspect thai.apkg`,
	Args: cobra.ExactArgs(1),
	RunE: runAnkiInspect,
}

var ankiAugmentCmd = &cobra.Command{
	Use:   "augment <file.apkg>",
	Short: "Add tone analysis to Anki notes",
	Long: `Read an Anki deck and work out the tones of its Thai text.

This command:
1. Reads the .apkg file
2. Finds the field containing Thai text
3. Analyzes every syllable of that field
4. Outputs the analyses as JSON, or writes a new deck with the fields
   Tone, Tone_Class, Tone_LiveDead, Tone_Confidence and Tone_Explanation

Examples:
  gaier anki augment thai.apkg
  gaier anki augment thai.apkg --field "Thai"
  gaier anki augment thai.apkg --format apkg --output thai_tones.apkg`,
	Args: cobra.ExactArgs(1),
	RunE: runAnkiAugment,
}

var (
	ankiInspectLimit  int
	ankiAugmentOutput string
	ankiAugmentFormat string
)

func init() {
	rootCmd.AddCommand(ankiCmd)
	ankiCmd.AddCommand(ankiInspectCmd)
	ankiCmd.AddCommand(ankiAugmentCmd)

	ankiInspectCmd.Flags().IntVarP(&ankiInspectLimit, "limit", "n", 5, "Number of sample notes to show")

	ankiAugmentCmd.Flags().StringP("field", "f", "", "Field name containing Thai text (auto-detect if not specified)")
	ankiAugmentCmd.Flags().StringVarP(&ankiAugmentOutput, "output", "o", "", "Output file (stdout for json, <deck>_tones.apkg for apkg)")
	ankiAugmentCmd.Flags().StringVar(&ankiAugmentFormat, "format", augmentJSON, "Output format: json, apkg")
	ankiAugmentCmd.Flags().IntP("workers", "w", 0, "Concurrent analyses (default from config)")

	viper.BindPFlag("anki.field", ankiAugmentCmd.Flags().Lookup("field"))
	viper.BindPFlag("anki.workers", ankiAugmentCmd.Flags().Lookup("workers"))
}

func runAnkiInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Opening: %s\n\n", path)

	pkg, err := anki.OpenPackage(path)
	if err != nil {
		return fmt.Errorf("opening package: %w", err)
	}
	defer closePackage(pkg)

	writeInspection(out, pkg, ankiInspectLimit)
	return nil
}

func writeInspection(w io.Writer, pkg *anki.Package, limit int) {
	fmt.Fprint(w, pkg.Summary())
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Field Details:")
	for _, model := range pkg.SortedModels() {
		fmt.Fprintf(w, "  %s:\n", model.Name)
		for _, field := range model.Fields {
			fmt.Fprintf(w, "    [%d] %s\n", field.Ord, field.Name)
		}
	}
	fmt.Fprintln(w)

	if field := pkg.DetectThaiField(); field != "" {
		fmt.Fprintf(w, "Thai text found in field: %s\n\n", field)
	} else {
		fmt.Fprintf(w, "No Thai text found in the first notes\n\n")
	}

	fmt.Fprintf(w, "Sample Notes (first %d):\n", limit)
	for i, note := range pkg.Notes {
		if i >= limit {
			break
		}

		modelName := "unknown"
		if model := pkg.Model(note); model != nil {
			modelName = model.Name
		}

		fmt.Fprintf(w, "\n  Note %d (Model: %s):\n", note.ID, modelName)
		fieldNames := pkg.FieldNames(note)
		for j, value := range note.Fields {
			fieldName := fmt.Sprintf("Field %d", j)
			if j < len(fieldNames) {
				fieldName = fieldNames[j]
			}
			fmt.Fprintf(w, "    %s: %s\n", fieldName, runewidth.Truncate(anki.StripHTML(value), 100, "..."))
		}
	}
}

func runAnkiAugment(cmd *cobra.Command, args []string) error {
	path := args[0]
	stderr := cmd.ErrOrStderr()

	switch ankiAugmentFormat {
	case augmentJSON, augmentApkg:
	default:
		return fmt.Errorf("unknown format: %s", ankiAugmentFormat)
	}

	cfg, cat, err := loadSettings()
	if err != nil {
		return err
	}

	pkg, err := anki.OpenPackage(path)
	if err != nil {
		return fmt.Errorf("opening package: %w", err)
	}
	defer closePackage(pkg)

	fmt.Fprintf(stderr, "Opened: %s (%d notes)\n", path, len(pkg.Notes))

	field := cfg.Anki.Field
	if field == "" {
		field = pkg.DetectThaiField()
		if field == "" {
			return errors.New("could not auto-detect field with Thai text, use --field to specify")
		}
		fmt.Fprintf(stderr, "Auto-detected Thai field: %s\n", field)
	}

	results, err := augmentNotes(cmd.Context(), pkg, cat, field, cfg.Anki.Workers)
	if err != nil {
		return err
	}

	if ankiAugmentFormat == augmentApkg {
		output := ankiAugmentOutput
		if output == "" {
			output = anki.OutputPath(path, cfg.Anki.OutputSuffix)
		}
		if err := writeAugmentedApkg(pkg, results, output); err != nil {
			return err
		}

		fmt.Fprintf(stderr, "Processed %d notes with Thai text\n", len(results))
		fmt.Fprintf(stderr, "Wrote augmented deck to: %s\n", output)
		fmt.Fprintf(stderr, "\nNew fields added to notes:\n")
		for _, f := range anki.ToneFields {
			fmt.Fprintf(stderr, "  - %s\n", f)
		}
		return nil
	}

	output := cmd.OutOrStdout()
	if ankiAugmentOutput != "" {
		f, err := os.Create(ankiAugmentOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	fmt.Fprintf(stderr, "Processed %d notes with Thai text\n", len(results))
	return nil
}

// augmentNotes analyzes field of every note holding Thai text. Notes
// without Thai are skipped; the result keeps deck order.
func augmentNotes(ctx context.Context, pkg *anki.Package, cat *alphabet.Catalog, field string, workers int) ([]AugmentedNote, error) {
	var (
		notes []*anki.Note
		texts []string
	)
	for _, note := range pkg.Notes {
		text := anki.StripHTML(pkg.FieldValue(note, field))
		if !anki.ContainsThai(text) {
			continue
		}
		notes = append(notes, note)
		texts = append(texts, text)
	}

	analyses, err := tone.AnalyzeAll(ctx, texts, cat, workers)
	if err != nil {
		return nil, fmt.Errorf("analyzing notes: %w", err)
	}

	results := make([]AugmentedNote, len(notes))
	for i, note := range notes {
		original := make(map[string]string)
		fieldNames := pkg.FieldNames(note)
		for j, value := range note.Fields {
			name := fmt.Sprintf("field_%d", j)
			if j < len(fieldNames) {
				name = fieldNames[j]
			}
			original[name] = anki.StripHTML(value)
		}

		results[i] = AugmentedNote{
			NoteID:    note.ID,
			Text:      texts[i],
			Original:  original,
			Tone:      anki.ToneDataFrom(analyses[i]),
			Syllables: analyses[i],
		}
		slog.Debug("analyzed note", "id", note.ID, "text", texts[i], "tone", results[i].Tone.Tone)
	}

	return results, nil
}

// writeAugmentedApkg writes the tone fields into a copy of the deck.
func writeAugmentedApkg(pkg *anki.Package, results []AugmentedNote, outputPath string) error {
	var modelIDs []int64
	for _, r := range results {
		if note := pkg.NoteByID(r.NoteID); note != nil && !slices.Contains(modelIDs, note.ModelID) {
			modelIDs = append(modelIDs, note.ModelID)
		}
	}
	slices.Sort(modelIDs)

	for _, id := range modelIDs {
		added, err := pkg.AddToneFields(id)
		if err != nil {
			return fmt.Errorf("adding tone fields to model: %w", err)
		}
		slog.Debug("added tone fields", "model", id, "count", added)
	}

	for _, r := range results {
		note := pkg.NoteByID(r.NoteID)
		if note == nil {
			continue
		}
		if err := pkg.SetToneData(note, r.Tone); err != nil {
			slog.Warn("could not set tone data", "note", note.ID, "err", err)
		}
	}

	if err := pkg.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving augmented package: %w", err)
	}
	return nil
}

func closePackage(pkg *anki.Package) {
	if err := pkg.Close(); err != nil {
		slog.Warn("closing package", "err", err)
	}
}
