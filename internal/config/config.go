// Package config loads settings for the cssselect command.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/benbjohnson/cssselect/parser"
)

// Output formats.
const (
	FormatText = "text"
	FormatTree = "tree"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds the command settings.
type Config struct {
	Format   string `yaml:"format"`
	MaxDepth int    `yaml:"max_depth"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Format:   FormatText,
		MaxDepth: parser.DefaultMaxDepth,
		LogLevel: "warn",
	}
}

// Load reads a YAML configuration file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	buf, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate returns an error if the configuration cannot be used.
func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatTree, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative: %d", c.MaxDepth)
	}
	return nil
}
