package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "8080"
jwt:
  secret: dev-secret
storage:
  type: minio
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 720*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.True(t, cfg.AI.FallbackContent)
	assert.Equal(t, 10, cfg.Schedule.LowScoreMinutes)
	assert.Equal(t, 30, cfg.Schedule.MidScoreMinutes)
	assert.Equal(t, 60, cfg.Schedule.BasePassMinutes)
	assert.Equal(t, 10080, cfg.Schedule.MaxIntervalMinutes)
	assert.Equal(t, 100, cfg.Notifications.MaxItems)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
jwt:
  secret: from-file
storage:
  type: minio
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_DRIVER", "sqlite")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoadConfigRejectsShortSecretInRelease(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: release
jwt:
  secret: short
storage:
  type: minio
`)

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
