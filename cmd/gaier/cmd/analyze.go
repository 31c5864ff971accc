package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/eNzyOfficial/gai-er/internal/config"
	"github.com/eNzyOfficial/gai-er/internal/thai"
	"github.com/eNzyOfficial/gai-er/internal/tone"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <text>...",
	Short: "Work out the tone of each syllable",
	Long: `Analyze one or more pieces of Thai text. Each argument is split into
syllables and every syllable gets:
  - initial consonant and its class
  - vowel, final consonant and tone mark
  - live or dead, short or long
  - the resulting tone, with the rules that produced it

Examples:
  gaier analyze มาลี
  gaier analyze ไม้ ข้าว --format json
  gaier analyze สวัสดี --trace`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

var analyzeTrace bool

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("format", config.FormatText, "Output format: text, json, yaml")
	analyzeCmd.Flags().BoolVar(&analyzeTrace, "trace", false, "Show the rule trace of each syllable")
	viper.BindPFlag("format", analyzeCmd.Flags().Lookup("format"))
}

// TextAnalysis is the analysis of one command-line argument.
type TextAnalysis struct {
	Text      string              `json:"text" yaml:"text"`
	Syllables []thai.ToneAnalysis `json:"syllables" yaml:"syllables"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, cat, err := loadSettings()
	if err != nil {
		return err
	}

	results, err := tone.AnalyzeAll(cmd.Context(), args, cat, cfg.Anki.Workers)
	if err != nil {
		return fmt.Errorf("analyzing: %w", err)
	}

	analyses := make([]TextAnalysis, len(args))
	for i, text := range args {
		analyses[i] = TextAnalysis{Text: text, Syllables: results[i]}
	}

	return writeAnalyses(cmd.OutOrStdout(), cfg.Format, analyses, analyzeTrace)
}

// writeAnalyses renders analyses in the given output format.
func writeAnalyses(w io.Writer, format string, analyses []TextAnalysis, trace bool) error {
	switch format {
	case config.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(analyses); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	case config.FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(analyses); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return encoder.Close()
	case config.FormatText:
		for i, a := range analyses {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeText(w, a, trace)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)

	toneStyles = map[thai.Tone]lipgloss.Style{
		thai.ToneMid:     lipgloss.NewStyle().Foreground(lipgloss.Color("#a8dadc")),
		thai.ToneLow:     lipgloss.NewStyle().Foreground(lipgloss.Color("#4ecdc4")),
		thai.ToneFalling: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		thai.ToneHigh:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ffe66d")),
		thai.ToneRising:  lipgloss.NewStyle().Foreground(lipgloss.Color("#a8e6cf")),
		thai.ToneUnknown: lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
)

// writeText prints one line per syllable followed by its explanation.
func writeText(w io.Writer, a TextAnalysis, trace bool) {
	fmt.Fprintln(w, headerStyle.Render(a.Text))
	if len(a.Syllables) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  (nothing to analyze)"))
		return
	}

	width := 0
	for _, s := range a.Syllables {
		width = max(width, runewidth.StringWidth(s.Syllable))
	}

	for _, s := range a.Syllables {
		class := string(s.ConsonantClass)
		if class == "" {
			class = "?"
		}
		live := "dead"
		if s.IsLive {
			live = "live"
		}

		fmt.Fprintf(w, "  %s  %s  %-4s  %s  %-5s  %s\n",
			runewidth.FillRight(s.Syllable, width),
			toneStyles[s.Tone].Render(runewidth.FillRight(string(s.Tone), 7)),
			class,
			live,
			s.VowelLength,
			mutedStyle.Render("confidence "+string(s.Confidence)),
		)
		for _, line := range s.Explanation {
			fmt.Fprintf(w, "      %s\n", line)
		}
		if trace {
			for _, step := range s.RuleTrace {
				fmt.Fprintf(w, "      %s\n", mutedStyle.Render(formatStep(step)))
			}
		}
	}
}

func formatStep(step thai.RuleStep) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", step.ID, step.Label)
	if step.Value != "" {
		b.WriteString(": " + step.Value)
	}
	return b.String()
}
