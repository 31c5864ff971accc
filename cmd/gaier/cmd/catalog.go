package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/eNzyOfficial/gai-er/internal/config"
	"github.com/eNzyOfficial/gai-er/internal/thai"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the alphabet catalog",
	Long: `List the records of the alphabet catalog the engine uses, either the
built-in one or the file set with --catalog.

Groups: consonant, vowel, number, mark, class, live_dead, length

Examples:
  gaier catalog
  gaier catalog --group class
  gaier catalog --group length --format json`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

var (
	catalogGroup  string
	catalogFormat string
)

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().StringVarP(&catalogGroup, "group", "g", "", "Only list one group")
	catalogCmd.Flags().StringVar(&catalogFormat, "format", "", "Output format: text, json, yaml (default from config)")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, cat, err := loadSettings()
	if err != nil {
		return err
	}

	records := cat.Records()
	if catalogGroup != "" {
		g, err := parseGroup(catalogGroup)
		if err != nil {
			return err
		}
		records = cat.Group(g)
	}

	format := catalogFormat
	if format == "" {
		format = cfg.Format
	}
	return writeRecords(cmd.OutOrStdout(), format, records)
}

// parseGroup maps a group name onto thai.Groups.
func parseGroup(name string) (thai.AlphabetGroup, error) {
	name = strings.ToLower(strings.ReplaceAll(name, "-", "_"))
	for _, g := range thai.Groups {
		if string(g) == name {
			return g, nil
		}
	}

	valid := make([]string, len(thai.Groups))
	for i, g := range thai.Groups {
		valid[i] = string(g)
	}
	return "", fmt.Errorf("unknown group %q (valid: %s)", name, strings.Join(valid, ", "))
}

func writeRecords(w io.Writer, format string, records []thai.Grapheme) error {
	switch format {
	case config.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(records); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	case config.FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(records); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return encoder.Close()
	case config.FormatText:
		writeRecordTable(w, records)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}

func writeRecordTable(w io.Writer, records []thai.Grapheme) {
	columns := []string{"Char", "Name", "Type", "Class", "Live", "Length", "Final", "IPA"}
	widths := []int{4, 14, 9, 5, 4, 6, 5, 0}

	row := func(cells []string) {
		var b strings.Builder
		for i, c := range cells {
			if widths[i] > 0 {
				c = runewidth.FillRight(c, widths[i])
			}
			b.WriteString(c)
			if i < len(cells)-1 {
				b.WriteString("  ")
			}
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}

	row(columns)
	for _, r := range records {
		live := ""
		if r.IsLive != nil {
			live = "dead"
			if *r.IsLive {
				live = "live"
			}
		}
		length := ""
		if r.IsShort != nil {
			length = string(thai.Long)
			if *r.IsShort {
				length = string(thai.Short)
			}
		}
		row([]string{r.Character, r.Name, string(r.Type), string(r.Class), live, length, r.FinalConsonant, r.IPA})
	}
	fmt.Fprintf(w, "\n%d records\n", len(records))
}
