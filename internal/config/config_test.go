package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USERNAME", "connectly")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_DATABASE", "connectly")
	t.Setenv("ACCESS_TOKEN_SECRET", "token-secret")
}

func TestLoadFromEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ACCESS_TOKEN_TTL", "2h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com")
	t.Setenv("SMTP_USERNAME", "jobs@gmail.com")
	t.Setenv("SMTP_FROM", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "jobs@gmail.com", cfg.SMTP.From)
	assert.Equal(t, "5432", cfg.Database.Port)
}

func TestLoadYAMLOverlay(t *testing.T) {
	setRequiredEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: development
port: 7000
database:
  name: overlay_db
  max_conns: 3
jobs:
  apply_recipient: hr@gmail.com
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "overlay_db", cfg.Database.Name)
	assert.Equal(t, int32(3), cfg.Database.MaxConns)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "hr@gmail.com", cfg.Jobs.ApplyRecipient)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ACCESS_TOKEN_SECRET", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.EqualError(t, cfg.Validate(), "ACCESS_TOKEN_SECRET is required")
}

func TestInvalidNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("ACCESS_TOKEN_TTL", "forever")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenTTL)
}
