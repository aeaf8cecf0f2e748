package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Dump formats for the final state
const (
	DumpText   = "text"
	DumpPretty = "pretty"
	DumpNone   = "none"
)

// Config holds run defaults, usually read from a tim.yaml file
type Config struct {
	Verbose  bool   `yaml:"verbose"`
	NoColor  bool   `yaml:"no_color"`
	MaxSteps int    `yaml:"max_steps"` // 0 = unlimited
	Trace    string `yaml:"trace"`     // JSON-lines trace file, empty = off
	Dump     string `yaml:"dump"`      // text, pretty or none
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{Dump: DumpText}
}

// Load reads a YAML config file on top of the defaults.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values
func (c Config) Validate() error {
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative, got %d", c.MaxSteps)
	}
	switch c.Dump {
	case DumpText, DumpPretty, DumpNone:
	default:
		return fmt.Errorf("dump must be %s, %s or %s, got %q", DumpText, DumpPretty, DumpNone, c.Dump)
	}
	return nil
}
