package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/robfig/cron/v3"
)

// Validator validates configuration values
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

var logLevels = map[string]struct{}{
	"trace": {},
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// ValidateLogLevel validates a logging level name
func (v *Validator) ValidateLogLevel(level string) error {
	if level == "" {
		return fmt.Errorf("log level cannot be empty")
	}
	if _, ok := logLevels[strings.ToLower(level)]; !ok {
		return fmt.Errorf("unknown log level %q (expected trace, debug, info, warn or error)", level)
	}
	return nil
}

// ValidateSchedule validates a janitor cron schedule
func (v *Validator) ValidateSchedule(spec string) error {
	if spec == "" {
		return fmt.Errorf("maintenance schedule cannot be empty")
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid maintenance schedule %q: %w", spec, err)
	}
	return nil
}

// ValidateListen validates a host:port listen address
func (v *Validator) ValidateListen(listen string) error {
	if listen == "" {
		return fmt.Errorf("metrics listen address cannot be empty")
	}
	if _, _, err := net.SplitHostPort(listen); err != nil {
		return fmt.Errorf("invalid metrics listen address %q: %w", listen, err)
	}
	return nil
}

// Validate checks the whole configuration
func (v *Validator) Validate(cfg *Config) error {
	if err := v.ValidateLogLevel(cfg.Logging.Level); err != nil {
		return err
	}
	if cfg.Maintenance.Enabled {
		if err := v.ValidateSchedule(cfg.Maintenance.Schedule); err != nil {
			return err
		}
	}
	if cfg.Metrics.Enabled {
		if err := v.ValidateListen(cfg.Metrics.Listen); err != nil {
			return err
		}
	}
	return nil
}
