package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qasmtools/cq/parser"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
	require.NoError(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, parser.DefaultMaxErrors, cfg.Parser.MaxErrors)
	assert.Greater(t, cfg.Check.Jobs, 0)
	assert.Equal(t, []string{".cq"}, cfg.Check.Extensions)
	assert.Equal(t, 1, cfg.Server.Verbosity)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFullFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".cq.yaml", `
parser:
  maxErrors: 10
check:
  jobs: 2
  extensions: [".cq", ".qasm"]
server:
  verbosity: 2
  logFile: /tmp/cq-lsp.log
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Parser.MaxErrors)
	assert.Equal(t, 2, cfg.Check.Jobs)
	assert.Equal(t, []string{".cq", ".qasm"}, cfg.Check.Extensions)
	assert.Equal(t, 2, cfg.Server.Verbosity)
	assert.Equal(t, "/tmp/cq-lsp.log", cfg.Server.LogFile)
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".cq.yml", "check:\n  jobs: 4\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Check.Jobs)
	assert.Equal(t, parser.DefaultMaxErrors, cfg.Parser.MaxErrors)
	assert.Equal(t, []string{".cq"}, cfg.Check.Extensions)
	assert.Equal(t, 1, cfg.Server.Verbosity)
}

func TestLoadPrefersYamlName(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".cq.yaml", "check:\n  jobs: 3\n")
	writeConfig(t, dir, ".cq.yml", "check:\n  jobs: 7\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Check.Jobs)
}

func TestParseNegativeMaxErrorsLiftsCap(t *testing.T) {
	cfg, err := Parse([]byte("parser:\n  maxErrors: -1\n"), ".cq.yaml")
	require.NoError(t, err)
	assert.Equal(t, -1, cfg.Parser.MaxErrors)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("parser: ["), "bad/.cq.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad/.cq.yaml")
}
