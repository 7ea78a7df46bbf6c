package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ".csv", cfg.Input.Extension)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Equal(t, 10, cfg.Sampling.WindowSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Schedule.Cron)
	assert.Empty(t, cfg.History.SQLitePath)
}

func TestLoad_YAMLAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
input:
  root_dir: /data/exchanges
  max_files_per_exchange: 2
output:
  dir: /tmp/out
sampling:
  seed: 7
log:
  format: json
history:
  sqlite_path: history.db
`), 0o644))

	t.Setenv("PREDICTOR_OUTPUT_DIR", "/srv/predictions")
	t.Setenv("PREDICTOR_CRON", "0 0 18 * * 1-5")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/exchanges", cfg.Input.RootDir)
	assert.Equal(t, 2, cfg.Input.MaxFilesPerExchange)
	assert.Equal(t, "/srv/predictions", cfg.Output.Dir)
	assert.Equal(t, int64(7), cfg.Sampling.Seed)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "0 0 18 * * 1-5", cfg.Schedule.Cron)
	assert.Equal(t, "history.db", cfg.History.SQLitePath)
	require.NoError(t, cfg.Validate())
}

func TestLoad_BadSeed(t *testing.T) {
	t.Setenv("PREDICTOR_SEED", "seven")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: [unclosed"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestApplyArgs(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	require.Error(t, cfg.ApplyArgs([]string{"only-root"}))
	require.Error(t, cfg.ApplyArgs([]string{"root", "two"}))

	require.NoError(t, cfg.ApplyArgs([]string{"root", "2"}))
	assert.Equal(t, "root", cfg.Input.RootDir)
	assert.Equal(t, 2, cfg.Input.MaxFilesPerExchange)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing root", func(c *Config) { c.Input.RootDir = "" }},
		{"negative max files", func(c *Config) { c.Input.MaxFilesPerExchange = -1 }},
		{"zero window", func(c *Config) { c.Sampling.WindowSize = 0 }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
			require.NoError(t, err)
			require.NoError(t, cfg.ApplyArgs([]string{"root", "1"}))
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
