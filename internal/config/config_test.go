package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ".healthsense/health.db", cfg.Database.Path)
	assert.Equal(t, "localhost:8080", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 90, cfg.Retention.ReadingDays)
	assert.False(t, cfg.Retention.Vacuum)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "healthsense.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  path: /var/lib/healthsense/health.db
server:
  addr: 0.0.0.0:9090
retention:
  reading_days: 365
  vacuum: true
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/healthsense/health.db", cfg.Database.Path)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr)
	assert.Equal(t, 365, cfg.Retention.ReadingDays)
	assert.True(t, cfg.Retention.Vacuum)
	// Untouched sections keep their defaults
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "healthsense.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  path: from-file.db
ai:
  model: file-model
`), 0644))

	t.Setenv("HEALTHSENSE_DB", "from-env.db")
	t.Setenv("HEALTHSENSE_MODEL", "env-model")
	t.Setenv("HEALTHSENSE_ADDR", "localhost:7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env.db", cfg.Database.Path)
	assert.Equal(t, "env-model", cfg.AI.Model)
	assert.Equal(t, "localhost:7070", cfg.Server.Addr)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "healthsense.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [not: a: mapping"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty db path", func(c *Config) { c.Database.Path = "" }, "database path"},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server addr"},
		{"retention too low", func(c *Config) { c.Retention.ReadingDays = 7 }, "reading_days"},
		{"retention too high", func(c *Config) { c.Retention.ReadingDays = 10000 }, "reading_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
