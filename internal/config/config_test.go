package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Format = "xml"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg = Default()
	cfg.Anki.Workers = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	cfg := Default()
	cfg.Catalog = "/tmp/alphabet.yaml"
	cfg.Format = FormatJSON
	cfg.Anki.Field = "Thai"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, *loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("format: yaml\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, cfg.Format)
	assert.Equal(t, 4, cfg.Anki.Workers)
	assert.Equal(t, "_tones", cfg.Anki.OutputSuffix)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("format: [unclosed"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("format: xml\n"), 0644))
	_, err = Load(invalid)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestFromViper(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader("anki:\n  field: Front\n  workers: 8\n")))
	v.Set("format", FormatJSON)

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, "Front", cfg.Anki.Field)
	assert.Equal(t, 8, cfg.Anki.Workers)
	assert.Equal(t, "_tones", cfg.Anki.OutputSuffix)
}

func TestFromViper_Invalid(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("anki.workers", -1)

	_, err := FromViper(v)
	assert.ErrorIs(t, err, ErrInvalid)
}
