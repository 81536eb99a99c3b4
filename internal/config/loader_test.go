package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "alcove.json"))

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.DataDir)
	assert.NotEmpty(t, cfg.Sessions.Dir)
	assert.NotEmpty(t, cfg.Aliases.Path)
}

func TestLoader_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alcove.json")
	content := `{
		"data_dir": "/tmp/alcove-test",
		"logging": {"level": "debug"},
		"maintenance": {"enabled": false, "schedule": "@daily"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/alcove-test", cfg.DataDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Maintenance.Enabled)
	assert.Equal(t, "@daily", cfg.Maintenance.Schedule)

	// Unset paths resolve under the data dir.
	assert.Equal(t, filepath.Join("/tmp/alcove-test", "sessions"), cfg.Sessions.Dir)
	assert.Equal(t, filepath.Join("/tmp/alcove-test", "aliases.json"), cfg.Aliases.Path)
}

func TestLoader_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alcove.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0600))

	_, err := NewLoader(path).Load()
	assert.Error(t, err)
}

func TestLoader_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "alcove.json")
	loader := NewLoader(path)

	cfg := DefaultConfig()
	cfg.DataDir = "/tmp/alcove-save-test"
	cfg.Logging.Level = "warn"
	require.NoError(t, loader.Save(cfg))

	loaded, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/alcove-save-test", loaded.DataDir)
	assert.Equal(t, "warn", loaded.Logging.Level)
}

func TestLoader_GetConfigPath(t *testing.T) {
	assert.Equal(t, "/etc/alcove.json", NewLoader("/etc/alcove.json").GetConfigPath())
	assert.NotEmpty(t, NewLoader("").GetConfigPath())
}
