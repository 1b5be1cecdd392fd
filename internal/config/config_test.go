package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, 6, cfg.Registration.MinPasswordLength)
	assert.Equal(t, "audio/webm", cfg.Audio.DefaultMIME)
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
app:
  env: production
server:
  port: 9000
storage:
  driver: memory
redis:
  timeout: 5s
`)
	t.Setenv("SKILLSWAP_SERVER_PORT", "9100")
	t.Setenv("SKILLSWAP_GENAI_API_KEY", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "secret", cfg.GenAI.APIKey)
	assert.Equal(t, "5s", cfg.Redis.Timeout.String())
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	path := writeConfig(t, "storage:\n  driver: indexeddb\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_SQLiteRequiresDSN(t *testing.T) {
	path := writeConfig(t, "storage:\n  driver: sqlite\n  dsn: \"\"\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestDotEnvCandidates(t *testing.T) {
	assert.Equal(t, []string{".env.dev.local", ".env.dev", ".env.local", ".env"}, DotEnvCandidates("dev"))
	assert.Equal(t, []string{".env.local", ".env"}, DotEnvCandidates(""))
	assert.Equal(t, "configs/config.local.yaml", ConfigPath(""))
}
