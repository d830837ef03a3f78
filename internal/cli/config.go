package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Output notations for cipher and keystream commands.
const (
	OutputLetters  = "letters"
	OutputSymbols  = "symbols"
	OutputDotCross = "dotcross"
)

// ValidOutputs defines the allowed output notations.
var ValidOutputs = []string{OutputLetters, OutputSymbols, OutputDotCross}

// Config is the resolved configuration shared by all commands.
//
// Values are layered: defaults, then the TOML file, then LORENZ_*
// environment variables, then flags given on the command line.
type Config struct {
	Patterns string // setting file path
	Setting  string // setting name inside Patterns
	Format   string // "json" | "text"
	Output   string // "letters" | "symbols" | "dotcross"
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Format: "text",
		Output: OutputLetters,
	}
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if !slices.Contains(ValidFormats, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", c.Format, ValidFormats)
	}
	if !slices.Contains(ValidOutputs, c.Output) {
		return fmt.Errorf("invalid output %q: must be one of %v", c.Output, ValidOutputs)
	}
	return nil
}

// FileConfig is the TOML shape of Config.
type FileConfig struct {
	Patterns string `toml:"patterns"`
	Setting  string `toml:"setting"`
	Format   string `toml:"format"`
	Output   string `toml:"output"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.lorenz/config.toml, or "" if the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".lorenz", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file, skipping keys whose
// flag was set explicitly.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)
	s.setString("patterns", fc.Patterns, &cfg.Patterns)
	s.setString("setting", fc.Setting, &cfg.Setting)
	s.setString("format", fc.Format, &cfg.Format)
	s.setString("output", fc.Output, &cfg.Output)
}

// EnvConfig holds the LORENZ_* environment overrides.
type EnvConfig struct {
	Config   string `env:"LORENZ_CONFIG"`
	Patterns string `env:"LORENZ_PATTERNS"`
	Setting  string `env:"LORENZ_SETTING"`
	Format   string `env:"LORENZ_FORMAT"`
	Output   string `env:"LORENZ_OUTPUT"`
}

// LoadEnvConfig parses LORENZ_* variables from the process environment.
func LoadEnvConfig() (EnvConfig, error) {
	var ec EnvConfig
	if err := env.Parse(&ec); err != nil {
		return ec, fmt.Errorf("parse env: %w", err)
	}
	return ec, nil
}

// ApplyEnvConfig applies environment overrides, skipping keys whose flag was
// set explicitly.
func ApplyEnvConfig(cfg *Config, ec EnvConfig, changed map[string]bool) {
	s := newConfigSetter(changed)
	s.setString("patterns", ec.Patterns, &cfg.Patterns)
	s.setString("setting", ec.Setting, &cfg.Setting)
	s.setString("format", ec.Format, &cfg.Format)
	s.setString("output", ec.Output, &cfg.Output)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// configSetter applies values only when the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}
