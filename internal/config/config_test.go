package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "http://localhost:5000/api/parse", cfg.Services.ParseURL)
	assert.Equal(t, "http://localhost:5000/api/generate-pdf", cfg.Services.RenderURL)
	assert.Equal(t, 60*time.Second, cfg.Services.Timeout)
	assert.Equal(t, "downloads", cfg.Output.Dir)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Server.Port)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8080
services:
  parse_url: http://parse.internal/api/parse
  timeout: 5s
output:
  dir: /tmp/exports
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://parse.internal/api/parse", cfg.Services.ParseURL)
	assert.Equal(t, 5*time.Second, cfg.Services.Timeout)
	assert.Equal(t, "/tmp/exports", cfg.Output.Dir)
	// Untouched sections keep their defaults.
	assert.Equal(t, "http://localhost:5000/api/generate-pdf", cfg.Services.RenderURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("FACTURIO_OUTPUT_DIR", "/tmp/dl")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "/tmp/dl", cfg.Output.Dir)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg.Server.Port = 5000
	cfg.Services.ParseURL = ""
	assert.Error(t, cfg.Validate())
}
