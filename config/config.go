// Package config loads tool settings from .cq.yaml files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/qasmtools/cq/parser"
)

// Config holds tool-wide settings. Every field has a working default,
// so a missing or partial file is fine.
type Config struct {
	Parser ParserConfig `yaml:"parser,omitempty"`
	Check  CheckConfig  `yaml:"check,omitempty"`
	Server ServerConfig `yaml:"server,omitempty"`
}

type ParserConfig struct {
	// MaxErrors caps diagnostics per file. Negative lifts the cap,
	// 0 means the default.
	MaxErrors int `yaml:"maxErrors,omitempty"`
}

type CheckConfig struct {
	// Jobs bounds how many files are parsed concurrently.
	Jobs int `yaml:"jobs,omitempty"`
	// Extensions selects which files a directory walk picks up.
	Extensions []string `yaml:"extensions,omitempty"`
}

type ServerConfig struct {
	Verbosity int    `yaml:"verbosity,omitempty"`
	LogFile   string `yaml:"logFile,omitempty"`
}

func Default() *Config {
	return &Config{
		Parser: ParserConfig{MaxErrors: parser.DefaultMaxErrors},
		Check:  CheckConfig{Jobs: runtime.NumCPU(), Extensions: []string{".cq"}},
		Server: ServerConfig{Verbosity: 1},
	}
}

// Load attempts to read .cq.yaml or .cq.yml from the given directory.
// Returns the defaults (not an error) if no config file exists.
func Load(dir string) (*Config, error) {
	for _, name := range []string{".cq.yaml", ".cq.yml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return Parse(data, path)
	}
	return Default(), nil
}

// Parse decodes a config document and fills unset fields from the
// defaults. The path only labels errors.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Parser.MaxErrors == 0 {
		c.Parser.MaxErrors = def.Parser.MaxErrors
	}
	if c.Check.Jobs <= 0 {
		c.Check.Jobs = def.Check.Jobs
	}
	if len(c.Check.Extensions) == 0 {
		c.Check.Extensions = def.Check.Extensions
	}
	if c.Server.Verbosity == 0 {
		c.Server.Verbosity = def.Server.Verbosity
	}
}
