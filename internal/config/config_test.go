package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
app:
  name: "shareit"
  environment: "test"
database:
  path: "data/test.db"
api:
  port: 8081
  rate_limit:
    enabled: true
    requests: 5
    window_seconds: 10
pagination:
  default_size: 20
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "shareit", cfg.App.Name)
	assert.Equal(t, "data/test.db", cfg.Database.Path)
	assert.Equal(t, 8081, cfg.API.Port)
	assert.True(t, cfg.API.RateLimit.Enabled)
	assert.Equal(t, 5, cfg.API.RateLimit.Requests)
	assert.Equal(t, 20, cfg.Pagination.DefaultSize)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "data/test.db"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "shareit", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, 60, cfg.API.RateLimit.Requests)
	assert.Equal(t, 60, cfg.API.RateLimit.WindowSeconds)
	assert.Equal(t, 10, cfg.Pagination.DefaultSize)
	assert.Equal(t, 9090, cfg.Monitoring.PrometheusPort)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_DB_PATH", "data/expanded.db")

	path := writeConfig(t, `
database:
  path: "${TEST_DB_PATH}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/expanded.db", cfg.Database.Path)
}

func TestLoad_MissingDatabasePath(t *testing.T) {
	path := writeConfig(t, `
app:
  name: "shareit"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database path")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
