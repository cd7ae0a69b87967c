// Package config loads the REPL settings from an optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"go.pasci.dev/pkg"
)

type Mode string

const (
	ModeProgram    Mode = "program"
	ModeExpression Mode = "expression"
)

type Config struct {
	Mode     Mode   `yaml:"mode"`
	Persist  bool   `yaml:"persist"`
	MaxDepth int    `yaml:"max_depth"`
	Prompt   string `yaml:"prompt"`
	Color    bool   `yaml:"color"`
}

func Default() *Config {
	return &Config{
		Mode:     ModeProgram,
		Persist:  true,
		MaxDepth: pasci.DefaultMaxDepth,
		Prompt:   ">> ",
		Color:    true,
	}
}

// Load reads filename on top of the defaults. A missing file is not an error.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", filename, err)
	}

	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", filename, err)
	}

	return cfg, nil
}

// Decode reads a YAML document on top of the defaults. Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Mode {
	case ModeProgram, ModeExpression:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}

	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}

	return nil
}
