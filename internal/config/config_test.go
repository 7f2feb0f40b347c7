package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_YAMLWithDefaults(t *testing.T) {
	p := writeFile(t, "config.yaml", `
server:
  port: 9090
gemini:
  api_key: from-file
chat:
  max_messages_per_session: 5
events:
  payment_delay: 500ms
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "from-file", cfg.Gemini.APIKey)
	assert.Equal(t, 5, cfg.Chat.MaxMessagesPerSession)
	assert.Equal(t, 500*time.Millisecond, cfg.Events.PaymentDelay)
	assert.Equal(t, "./files", cfg.Files.RootDir)
	assert.Equal(t, 30*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, time.Hour, cfg.Reminders.Interval)
	assert.Empty(t, cfg.Database.DSN)
}

func TestLoad_TOML(t *testing.T) {
	p := writeFile(t, "config.toml", `
[server]
port = 7070

[chat]
max_messages_per_session = 3
session_ttl = "30m"
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Chat.MaxMessagesPerSession)
	assert.Equal(t, 30*time.Minute, cfg.Chat.SessionTTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	p := writeFile(t, "config.yaml", "gemini:\n  api_key: from-file\n")
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("MINDZY_DATABASE_URL", "postgres://x")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Gemini.APIKey)
	assert.Equal(t, "postgres://x", cfg.Database.DSN)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	p := writeFile(t, "bad.yaml", "server: [")
	_, err = Load(p)
	assert.Error(t, err)
}
