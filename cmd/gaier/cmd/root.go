// Package cmd contains all CLI commands for gai-er.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/eNzyOfficial/gai-er/internal/alphabet"
	"github.com/eNzyOfficial/gai-er/internal/config"
	"github.com/eNzyOfficial/gai-er/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgDir string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gaier",
	Short: "gai-er - work out the tone of Thai syllables",
	Long: `gai-er explains the tone of written Thai using the classic rules:
consonant class, tone mark, live or dead syllable and vowel length.

Every result comes with the rule trail that produced it and a confidence
rating, so uncertain spellings are flagged rather than guessed silently.

Running 'gaier' without arguments launches the interactive TUI.`,
	Args:         cobra.NoArgs,
	SilenceUsage:  true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default is $HOME/.config/gai-er)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	rootCmd.PersistentFlags().String("catalog", "", "alphabet catalog file (.yaml, .json or .jsonl)")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("catalog", rootCmd.PersistentFlags().Lookup("catalog"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setupLogging(viper.GetBool("verbose"))

	dir := cfgDir
	if dir == "" {
		var err error
		dir, err = config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
	}
	viper.Set("config_dir", dir)

	config.SetDefaults(viper.GetViper())
	viper.SetEnvPrefix("GAIER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigFile(filepath.Join(dir, config.FileName))
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			slog.Warn("reading config file", "err", err)
		}
	} else {
		slog.Debug("loaded config", "path", viper.ConfigFileUsed())
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// configPath returns the config file in use, or "" when running on defaults.
func configPath() string {
	path := filepath.Join(getConfigDir(), config.FileName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// loadSettings resolves the configuration and the catalog it names.
func loadSettings() (*config.Config, *alphabet.Catalog, error) {
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}

	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, nil, err
	}
	return cfg, cat, nil
}

// loadCatalog reads path, or returns the built-in catalog when path is empty.
func loadCatalog(path string) (*alphabet.Catalog, error) {
	if path == "" {
		return alphabet.Default(), nil
	}

	cat, err := alphabet.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	slog.Debug("loaded catalog", "path", path, "records", cat.Len())
	return cat, nil
}

// runTUI launches the TUI, analyzing text first when given.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, cat, err := loadSettings()
	if err != nil {
		return err
	}

	deckDir := filepath.Join(getConfigDir(), "anki")
	if _, err := os.Stat(deckDir); err != nil {
		deckDir, _ = os.Getwd()
	}

	app := tui.NewApp(tui.Options{
		Catalog:    cat,
		Config:     cfg,
		ConfigPath: configPath(),
		Text:       strings.Join(args, " "),
		DeckDir:    deckDir,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	final, err := p.Run()
	if m, ok := final.(tui.AppModel); ok {
		if cerr := m.Close(); cerr != nil {
			slog.Warn("closing deck", "err", cerr)
		}
	}
	if err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
