package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig holds the per-project defaults for metadata generation.
// Values are overridden in order: file, then MDTO_* environment
// variables, then command line flags.
type ProjectConfig struct {
	// Bron is the default issuer recorded in identificatieBron.
	Bron string `yaml:"bron"`

	// Algoritme is the default checksum algorithm name.
	Algoritme string `yaml:"algoritme"`

	// URLPrefix is prepended to file names to derive URLBestand in
	// batch runs, for example "https://archief.voorbeeld.nl/depot".
	URLPrefix string `yaml:"url_prefix"`

	Strict  bool `yaml:"strict"`
	Quiet   bool `yaml:"quiet"`
	Verbose bool `yaml:"verbose"`
}

const ConfigFileName = "mdto.yaml"

// Load reads ConfigFileName from dir.
func Load(dir string) (*ProjectConfig, error) {
	cfg, err := LoadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads an explicitly named config file. Unlike Load, a
// missing file is an error here: the caller asked for this exact path.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overlays MDTO_* environment variables onto the config.
// Only variables that are set override file values.
func (c *ProjectConfig) ApplyEnv() {
	if v := os.Getenv("MDTO_BRON"); v != "" {
		c.Bron = v
	}
	if v := os.Getenv("MDTO_ALGORITME"); v != "" {
		c.Algoritme = v
	}
	if v := os.Getenv("MDTO_URL_PREFIX"); v != "" {
		c.URLPrefix = v
	}
}
