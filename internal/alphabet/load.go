package alphabet

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eNzyOfficial/gai-er/internal/thai"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for catalog files with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown catalog format")

//go:embed default.yaml
var defaultCatalog []byte

// Default returns the built-in Thai catalog.
func Default() *Catalog {
	records, err := ParseYAML(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("alphabet: embedded catalog is invalid: %v", err))
	}
	return New(records)
}

// DefaultYAML returns the raw embedded catalog, used to seed a user copy.
func DefaultYAML() []byte {
	return bytes.Clone(defaultCatalog)
}

// Load reads a catalog from a .yaml, .yml, .json or .jsonl file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var records []thai.Grapheme
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		records, err = ParseYAML(data)
	case ".json":
		records, err = ParseJSON(data)
	case ".jsonl":
		records, err = ParseJSONL(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return nil, err
	}

	return New(records), nil
}

// ParseYAML decodes a catalog document of the form `graphemes: [...]`.
func ParseYAML(data []byte) ([]thai.Grapheme, error) {
	var doc struct {
		Graphemes []thai.Grapheme `yaml:"graphemes"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog yaml: %w", err)
	}
	if err := Validate(doc.Graphemes); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return doc.Graphemes, nil
}

// ParseJSON decodes a JSON array of records.
func ParseJSON(data []byte) ([]thai.Grapheme, error) {
	var records []thai.Grapheme
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing catalog json: %w", err)
	}
	if err := Validate(records); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return records, nil
}

// ParseJSONL decodes one record per line. Blank and malformed lines are
// skipped.
func ParseJSONL(data []byte) ([]thai.Grapheme, error) {
	var records []thai.Grapheme

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var g thai.Grapheme
		if err := json.Unmarshal([]byte(line), &g); err != nil {
			continue
		}
		records = append(records, g)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading catalog jsonl: %w", err)
	}

	if err := Validate(records); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return records, nil
}
