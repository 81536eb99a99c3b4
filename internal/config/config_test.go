package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Console)
	assert.True(t, cfg.Sessions.Cache)
	assert.True(t, cfg.Maintenance.Enabled)
	assert.Equal(t, "@hourly", cfg.Maintenance.Schedule)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestConfig_String(t *testing.T) {
	out := DefaultConfig().String()
	assert.Contains(t, out, `"maintenance"`)
	assert.Contains(t, out, `"@hourly"`)
}
