package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10, cfg.Dashboard.EfficiencyLimit)
	assert.Equal(t, int64(10<<20), cfg.Dashboard.MaxUploadBytes)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.NoError(t, cfg.validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		wantOK bool
	}{
		{name: "defaults are valid", mutate: func(*Config) {}, wantOK: true},
		{name: "zero port", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "port out of range", mutate: func(c *Config) { c.Server.Port = 70000 }},
		{name: "zero read timeout", mutate: func(c *Config) { c.Server.ReadTimeout = 0 }},
		{name: "zero efficiency limit", mutate: func(c *Config) { c.Dashboard.EfficiencyLimit = 0 }},
		{name: "zero upload limit", mutate: func(c *Config) { c.Dashboard.MaxUploadBytes = 0 }},
		{name: "no allowed origins", mutate: func(c *Config) { c.Security.AllowedOrigins = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("ESGPULSE_SERVER_PORT", "9090")
	t.Setenv("ESGPULSE_DASHBOARD_EFFICIENCY_LIMIT", "25")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 25, cfg.Dashboard.EfficiencyLimit)
}

func TestDatasetPaths(t *testing.T) {
	cfg := Default()
	cfg.Paths.DataDir = filepath.Join("var", "data")

	assert.Equal(t, filepath.Join("var", "data", "title_sustainability.csv"), cfg.ObservationsPath())
	assert.Equal(t, filepath.Join("var", "data", "esg_metrics.csv"), cfg.MetricsPath())
	assert.Equal(t, filepath.Join("var", "data", "peer_benchmark.csv"), cfg.BenchmarkPath())
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Paths.DataDir = filepath.Join(dir, "data")
	cfg.Paths.ExportsDir = filepath.Join(dir, "exports")
	cfg.Paths.LogsDir = filepath.Join(dir, "logs")

	require.NoError(t, cfg.EnsureDirectories())
	assert.DirExists(t, cfg.Paths.DataDir)
	assert.DirExists(t, cfg.Paths.ExportsDir)
	assert.DirExists(t, cfg.Paths.LogsDir)
}
