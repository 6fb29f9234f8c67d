package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer-go/internal/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  address: ":9090"
analyzer:
  base_url: "https://analyzer.example.com"
  timeout_seconds: 30
logger:
  level: "debug"
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "https://analyzer.example.com", cfg.Analyzer.BaseURL)
	assert.Equal(t, 30, cfg.Analyzer.TimeoutSeconds)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
analyzer:
  base_url: "https://analyzer.example.com"
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "templates/*.tmpl", cfg.Server.TemplateGlob)
	assert.Equal(t, 60, cfg.Analyzer.TimeoutSeconds)
	assert.Equal(t, 120, cfg.Session.TTLMinutes)
	assert.Equal(t, 10, cfg.Session.SweepIntervalMinutes)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRatio)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
analyzer:
  base_url: "https://from-file.example.com"
`)

	t.Setenv("ANALYZER_BASE_URL", "https://from-env.example.com")
	t.Setenv("SERVER_ADDRESS", ":7070")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	// 环境变量优先于文件内容
	assert.Equal(t, "https://from-env.example.com", cfg.Analyzer.BaseURL)
	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, "warn", cfg.Logger.Level)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "analyzer: [unclosed")
	_, err := config.LoadConfig(path)
	require.Error(t, err)
}

func TestValidateRequiresBaseURL(t *testing.T) {
	path := writeConfigFile(t, `
server:
  address: ":8080"
`)
	_, err := config.LoadConfig(path)
	require.Error(t, err)
}

func TestValidateRejectsNonHTTPBaseURL(t *testing.T) {
	path := writeConfigFile(t, `
analyzer:
  base_url: "ftp://analyzer.example.com"
`)
	_, err := config.LoadConfig(path)
	require.Error(t, err)
}

func TestValidateTracingEndpointRequiredWhenEnabled(t *testing.T) {
	path := writeConfigFile(t, `
analyzer:
  base_url: "https://analyzer.example.com"
tracing:
  enabled: true
`)
	_, err := config.LoadConfig(path)
	require.Error(t, err)
}
