package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_ValidateLogLevel(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateLogLevel("debug"))
	assert.NoError(t, v.ValidateLogLevel("INFO"))
	assert.Error(t, v.ValidateLogLevel(""))
	assert.Error(t, v.ValidateLogLevel("verbose"))
}

func TestValidator_ValidateSchedule(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateSchedule("@hourly"))
	assert.NoError(t, v.ValidateSchedule("*/5 * * * *"))
	assert.Error(t, v.ValidateSchedule(""))
	assert.Error(t, v.ValidateSchedule("whenever"))
}

func TestValidator_ValidateListen(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateListen("127.0.0.1:9464"))
	assert.NoError(t, v.ValidateListen(":8080"))
	assert.Error(t, v.ValidateListen(""))
	assert.Error(t, v.ValidateListen("no-port"))
}

func TestValidator_Validate(t *testing.T) {
	v := NewValidator()

	cfg := DefaultConfig()
	assert.NoError(t, v.Validate(cfg))

	cfg.Logging.Level = "bogus"
	assert.Error(t, v.Validate(cfg))

	cfg = DefaultConfig()
	cfg.Maintenance.Schedule = "bogus"
	assert.Error(t, v.Validate(cfg))

	// A disabled janitor's schedule is not checked.
	cfg.Maintenance.Enabled = false
	assert.NoError(t, v.Validate(cfg))
}
