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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultMaxReductionSteps, cfg.MaxReductionSteps)
	assert.True(t, cfg.EnforceExhaustiveMatch)
	assert.Equal(t, tracing.LevelError, cfg.Level())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte("max_reduction_steps: 500\nenforce_exhaustive_match: false\ntrace_level: Debug\n"), "poy.yaml")
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.MaxReductionSteps)
	assert.False(t, cfg.EnforceExhaustiveMatch)
	assert.Equal(t, tracing.LevelDebug, cfg.Level())
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("trace_level: info\n"), "poy.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxReductionSteps, cfg.MaxReductionSteps)
	assert.True(t, cfg.EnforceExhaustiveMatch)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("max_reduction_steps: -1\n"), "poy.yaml")
	assert.ErrorContains(t, err, "max_reduction_steps")

	_, err = Parse([]byte("trace_level: loud\n"), "poy.yaml")
	assert.ErrorContains(t, err, "trace_level")

	_, err = Parse([]byte("max_reduction_steps: [\n"), "poy.yaml")
	assert.ErrorContains(t, err, "parsing poy.yaml")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_reduction_steps: 42\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.MaxReductionSteps)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
