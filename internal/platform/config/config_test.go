package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(PathEnvVar, "")
	cfg, err := Load(writeYAML(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.True(t, cfg.InMemory())
	assert.True(t, cfg.Database.SeedMockData)
	assert.Equal(t, 10, cfg.Recommend.DefaultLimit)
	assert.Equal(t, 50, cfg.Recommend.MaxLimit)
	assert.Equal(t, 15*time.Second, cfg.Vision.Timeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
}

func TestLoad_FileThenEnv(t *testing.T) {
	p := writeYAML(t, `
server:
  port: 9000
database:
  driver: sqlite
  dsn: /tmp/tingrrr.db
recommend:
  default_limit: 5
`)
	t.Setenv("PORT", "9100")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("VISION_TIMEOUT", "3s")
	t.Setenv("RECOMMEND_MAX_LIMIT", "25")
	t.Setenv("SOME_UNRELATED_VAR", "x")

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "env wins over file")
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.InMemory())
	assert.Equal(t, 5, cfg.Recommend.DefaultLimit)
	assert.Equal(t, 25, cfg.Recommend.MaxLimit)
	assert.Equal(t, 3*time.Second, cfg.Vision.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	p := writeYAML(t, "{}\n")

	t.Run("bad driver", func(t *testing.T) {
		t.Setenv("DB_DSN", "x")
		t.Setenv("DB_DRIVER", "mysql")
		_, err := Load(p)
		assert.ErrorContains(t, err, "database.driver")
	})

	t.Run("limits", func(t *testing.T) {
		t.Setenv("RECOMMEND_DEFAULT_LIMIT", "60")
		_, err := Load(p)
		assert.ErrorContains(t, err, "recommend.max_limit")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
