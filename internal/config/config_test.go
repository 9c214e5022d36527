package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `bron: gemeente Voorbeeld
algoritme: sha512
url_prefix: https://archief.voorbeeld.nl/depot
strict: true
quiet: true
verbose: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "gemeente Voorbeeld", cfg.Bron)
	assert.Equal(t, "sha512", cfg.Algoritme)
	assert.Equal(t, "https://archief.voorbeeld.nl/depot", cfg.URLPrefix)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.Quiet)
	assert.True(t, cfg.Verbose)
}

func TestLoad_MinimalYAML(t *testing.T) {
	dir := t.TempDir()
	content := `bron: Nationaal Archief
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "Nationaal Archief", cfg.Bron)
	assert.Equal(t, "", cfg.Algoritme)
	assert.False(t, cfg.Strict)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{{invalid"), 0644))

	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(""), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, ProjectConfig{}, *cfg)
}

func TestLoadFile_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elders.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bron: expliciet\n"), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "expliciet", cfg.Bron)
}

func TestLoadFile_MissingIsError(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nergens.yaml"))
	assert.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestApplyEnv_Overrides(t *testing.T) {
	t.Setenv("MDTO_BRON", "provincie Utrecht")
	t.Setenv("MDTO_ALGORITME", "md5")
	t.Setenv("MDTO_URL_PREFIX", "https://depot.utrecht.nl")

	cfg := &ProjectConfig{Bron: "uit bestand", Algoritme: "sha256"}
	cfg.ApplyEnv()

	assert.Equal(t, "provincie Utrecht", cfg.Bron)
	assert.Equal(t, "md5", cfg.Algoritme)
	assert.Equal(t, "https://depot.utrecht.nl", cfg.URLPrefix)
}

func TestApplyEnv_UnsetVariablesKeepFileValues(t *testing.T) {
	t.Setenv("MDTO_BRON", "")
	t.Setenv("MDTO_ALGORITME", "")
	t.Setenv("MDTO_URL_PREFIX", "")

	cfg := &ProjectConfig{Bron: "uit bestand", Algoritme: "sha256"}
	cfg.ApplyEnv()

	assert.Equal(t, "uit bestand", cfg.Bron)
	assert.Equal(t, "sha256", cfg.Algoritme)
	assert.Equal(t, "", cfg.URLPrefix)
}
