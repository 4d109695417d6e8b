package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbjohnson/cssselect/internal/config"
	"github.com/benbjohnson/cssselect/parser"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, parser.DefaultMaxDepth, cfg.MaxDepth)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cssselect.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: yaml\nmax_depth: 8\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Config{Format: config.FormatYAML, MaxDepth: 8, LogLevel: "warn"}, cfg)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth: [1"), 0o600))
	_, err = config.Load(path)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg := config.Default()
	cfg.Format = "xml"
	assert.EqualError(t, cfg.Validate(), `unknown format "xml"`)

	cfg = config.Default()
	cfg.MaxDepth = -1
	assert.EqualError(t, cfg.Validate(), "max depth must not be negative: -1")
}
