package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/eNzyOfficial/gai-er/internal/alphabet"
	"github.com/eNzyOfficial/gai-er/internal/config"
	"github.com/spf13/cobra"
)

// catalogFileName is the editable catalog copy written by init.
const catalogFileName = "catalog.yaml"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize gai-er configuration",
	Long: `Initialize gai-er configuration files in your config directory.

This creates:
  - config.yaml   (output format, Anki settings, catalog location)
  - catalog.yaml  (a copy of the built-in alphabet catalog)
  - anki/         (where the TUI file picker starts)

Edit catalog.yaml to add names, IPA or examples; config.yaml already
points at it.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initializing gai-er configuration in %s\n\n", configDir)

	created, err := initConfigDir(configDir, force)
	if err != nil {
		return err
	}
	for _, file := range created {
		fmt.Fprintf(out, "  Created %s\n", file)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration initialized!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Run 'gaier analyze <thai text>' to check a word")
	fmt.Fprintln(out, "  2. Drop .apkg decks into the anki/ folder and run 'gaier'")

	return nil
}

// initConfigDir writes the default config and catalog into dir and returns
// the names of the files it created. Existing files are only replaced with
// force.
func initConfigDir(dir string, force bool) ([]string, error) {
	if err := config.EnsureConfigDir(filepath.Join(dir, "anki")); err != nil {
		return nil, err
	}

	configFile := filepath.Join(dir, config.FileName)
	catalogFile := filepath.Join(dir, catalogFileName)

	for _, path := range []string{configFile, catalogFile} {
		_, err := os.Stat(path)
		if err == nil && !force {
			return nil, fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("checking %s: %w", path, err)
		}
	}

	if err := os.WriteFile(catalogFile, alphabet.DefaultYAML(), 0644); err != nil {
		return nil, fmt.Errorf("writing catalog: %w", err)
	}

	cfg := config.Default()
	cfg.Catalog = catalogFile
	if err := config.Save(configFile, cfg); err != nil {
		return nil, err
	}

	return []string{config.FileName, catalogFileName}, nil
}
