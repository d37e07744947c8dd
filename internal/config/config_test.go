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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
env: prod
log_level: warn
http_server:
  address: ":9000"
  read_timeout: 3s
storage:
  driver: sqlite
  path: "/tmp/students.db"
metrics:
  enabled: true
docs:
  enabled: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/students.db", cfg.Storage.Path)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.Docs.Enabled)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
http_server:
  address: "localhost:8082"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.False(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Docs.Enabled)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, `
env: dev
http_server:
  address: "localhost:8082"
`)
	t.Setenv("HTTP_SERVER_ADDR", ":7777")
	t.Setenv("STORAGE_DRIVER", "sqlite")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Addr)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("missing address", func(t *testing.T) {
		_, err := Load(writeConfig(t, "env: dev\n"))
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
http_server:
  address: ":1"
storage:
  driver: postgres
`))
		assert.ErrorContains(t, err, "storage.driver")
	})
}

func TestValidate(t *testing.T) {
	cfg := Config{Env: "qa", Storage: Storage{Driver: DriverMemory}, Metrics: Metrics{Enabled: true, Path: "metrics"}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "env must be")
	assert.ErrorContains(t, err, "metrics.path")
}

func TestSampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "local.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "localhost:8082", cfg.Addr)
	assert.True(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.Docs.Enabled)
}
