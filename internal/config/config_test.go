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
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.Equal(t, []string{"*"}, cfg.Server.Origins())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "com.example", cfg.Generation.BasePackage)
	assert.Equal(t, "openai", cfg.Vision.Provider)
	assert.Equal(t, 60*time.Second, cfg.Vision.Timeout)
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "umlgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
  allowed_origins: "http://localhost:3000, https://editor.example.com"
log:
  level: debug
  format: console
vision:
  provider: anthropic
  timeout: 15s
`), 0o600))
	t.Setenv("UMLGEN_LOG_LEVEL", "warn")
	t.Setenv("UMLGEN_VISION_API_KEY", "sk-test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://editor.example.com"}, cfg.Server.Origins())
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "anthropic", cfg.Vision.Provider)
	assert.Equal(t, 15*time.Second, cfg.Vision.Timeout)
	assert.True(t, cfg.Vision.Enabled())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, yaml string
	}{
		{"log format", "log:\n  format: xml\n"},
		{"provider", "vision:\n  provider: gemini\n"},
		{"timeout", "vision:\n  timeout: -5s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "umlgen.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
