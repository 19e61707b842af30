package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o600)
	require.NoError(t, err)
	return dir
}

func TestInitialize_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Initialize(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.Generation.Model)
	assert.Equal(t, OutputLeakLog, cfg.Redaction.OutputLeakPolicy)
	assert.Equal(t, 1<<20, cfg.Ingest.MaxDocumentBytes)
}

func TestInitialize_UserOverridesDefaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9090"
generation:
  model: "local-model"
  base_url: "http://localhost:11434/v1"
redaction:
  output_leak_policy: reject
`)

	cfg, err := Initialize(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "local-model", cfg.Generation.Model)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Generation.BaseURL)
	assert.Equal(t, OutputLeakReject, cfg.Redaction.OutputLeakPolicy)
	// Unset fields keep builtin defaults.
	assert.Equal(t, 4096, cfg.Generation.MaxTokens)
	assert.Equal(t, "60s", cfg.Generation.RequestTimeout)
}

func TestInitialize_EnvExpansion(t *testing.T) {
	t.Setenv("DS_TEST_MODEL", "expanded-model")
	dir := writeConfig(t, `
generation:
  model: "{{.DS_TEST_MODEL}}"
`)

	cfg, err := Initialize(dir)
	require.NoError(t, err)
	assert.Equal(t, "expanded-model", cfg.Generation.Model)
}

func TestInitialize_InvalidYAML(t *testing.T) {
	dir := writeConfig(t, "generation: [unclosed")

	_, err := Initialize(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidYAML)
}

func TestInitialize_InvalidLeakPolicy(t *testing.T) {
	dir := writeConfig(t, `
redaction:
  output_leak_policy: shrug
`)

	_, err := Initialize(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestInitialize_InvalidTimeout(t *testing.T) {
	dir := writeConfig(t, `
generation:
  request_timeout: "soon"
`)

	_, err := Initialize(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestDurationAccessors(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, "10s", cfg.Server.ShutdownTimeout)
	assert.Positive(t, cfg.Server.ShutdownTimeoutDuration())
	assert.Positive(t, cfg.Generation.RequestTimeoutDuration())
}
