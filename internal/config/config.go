// Package config handles loading and saving user configuration for gai-er.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Output formats understood by the analyze command.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FileName is the config file inside the config directory.
const FileName = "config.yaml"

// Config holds all user configuration.
type Config struct {
	Catalog string     `yaml:"catalog" mapstructure:"catalog"` // catalog file; empty means the built-in catalog
	Format  string     `yaml:"format" mapstructure:"format"`   // text, json or yaml
	Anki    AnkiConfig `yaml:"anki" mapstructure:"anki"`
}

// AnkiConfig holds settings for deck augmentation.
type AnkiConfig struct {
	Field        string `yaml:"field" mapstructure:"field"`                 // note field holding Thai text; empty to auto-detect
	Workers      int    `yaml:"workers" mapstructure:"workers"`             // concurrent analyses
	OutputSuffix string `yaml:"output_suffix" mapstructure:"output_suffix"` // appended to the deck name for the augmented copy
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Format: FormatText,
		Anki: AnkiConfig{
			Workers:      4,
			OutputSuffix: "_tones",
		},
	}
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalid, c.Format)
	}
	if c.Anki.Workers <= 0 {
		return fmt.Errorf("%w: anki.workers must be positive, got %d", ErrInvalid, c.Anki.Workers)
	}
	return nil
}

// SetDefaults registers Default() with v so unset keys fall back to it.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("catalog", d.Catalog)
	v.SetDefault("format", d.Format)
	v.SetDefault("anki.field", d.Anki.Field)
	v.SetDefault("anki.workers", d.Anki.Workers)
	v.SetDefault("anki.output_suffix", d.Anki.OutputSuffix)
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads a configuration file. Keys missing from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg Config) error {
	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gai-er"), nil
}

// EnsureConfigDir creates dir if it doesn't exist.
func EnsureConfigDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return nil
}
