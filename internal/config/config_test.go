package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, "en", cfg.DefaultLanguage)
	assert.Equal(t, ".", cfg.Separator)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "INFO", cfg.Log.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iso3166.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: /srv/iso
language: pt_br
format: yaml
log:
  level: DEBUG
`), 0o600))

	t.Setenv("ISO3166_LOG_FORMAT", "json")
	t.Setenv("ISO3166_SEPARATOR", "/")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/iso", cfg.DataDir)
	assert.Equal(t, "pt-BR", cfg.Language)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "/", cfg.Separator)
	assert.Equal(t, "DEBUG", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("ISO3166_LANGUAGE", "??")

	_, err := Load("")
	require.Error(t, err)

	t.Setenv("ISO3166_LANGUAGE", "it")
	t.Setenv("ISO3166_FORMAT", "xml")

	_, err = Load("")
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
