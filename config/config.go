// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package config holds the tunables of the type-checker, loadable from a YAML file:
//
//	max_reduction_steps: 100000
//	enforce_exhaustive_match: true
//	trace_level: debug
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// DefaultMaxReductionSteps bounds type-level rewriting; it is only reached by non-terminating rules.
const DefaultMaxReductionSteps = 1_000_000_000

// Config represents the type-checker configuration.
type Config struct {
	// MaxReductionSteps bounds the number of normalization steps of the type-level rewrite system
	// for a single normalization.
	MaxReductionSteps int `yaml:"max_reduction_steps"`

	// EnforceExhaustiveMatch rejects match expressions whose decision tree has a reachable
	// failure leaf. Defaults to true.
	EnforceExhaustiveMatch bool `yaml:"enforce_exhaustive_match"`

	// TraceLevel is one of "error", "info" or "debug". Defaults to "error".
	TraceLevel string `yaml:"trace_level,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		MaxReductionSteps:      DefaultMaxReductionSteps,
		EnforceExhaustiveMatch: true,
		TraceLevel:             "error",
	}
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses YAML configuration content. Keys which are absent keep their default values.
// The path argument is used only for error messages.
func Parse(data []byte, path string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) validate(path string) error {
	if c.MaxReductionSteps < 0 {
		return fmt.Errorf("%s: max_reduction_steps must be positive, got %d", path, c.MaxReductionSteps)
	}
	switch strings.ToLower(c.TraceLevel) {
	case "", "error", "info", "debug":
	default:
		return fmt.Errorf("%s: unknown trace_level %q", path, c.TraceLevel)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.MaxReductionSteps == 0 {
		c.MaxReductionSteps = DefaultMaxReductionSteps
	}
	if c.TraceLevel == "" {
		c.TraceLevel = "error"
	}
}

// Level returns the configured trace level.
func (c *Config) Level() tracing.TraceLevel {
	return tracing.TraceLevelFromString(strings.ToLower(c.TraceLevel))
}
