package config

import "encoding/json"

// Config is the main Alcove configuration.
type Config struct {
	// Data directory, parent of all default paths
	DataDir string `json:"data_dir" mapstructure:"data_dir"`

	// Sessions holds session repository settings
	Sessions SessionsConfig `json:"sessions" mapstructure:"sessions"`

	// Aliases holds alias store settings
	Aliases AliasesConfig `json:"aliases" mapstructure:"aliases"`

	// Maintenance holds janitor settings
	Maintenance MaintenanceConfig `json:"maintenance" mapstructure:"maintenance"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Metrics endpoint configuration
	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics"`
}

// SessionsConfig holds session repository settings.
type SessionsConfig struct {
	Dir   string `json:"dir" mapstructure:"dir"`
	Cache bool   `json:"cache" mapstructure:"cache"`
}

// AliasesConfig holds alias store settings.
type AliasesConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// MaintenanceConfig holds janitor settings.
type MaintenanceConfig struct {
	Enabled  bool   `json:"enabled" mapstructure:"enabled"`
	Schedule string `json:"schedule" mapstructure:"schedule"` // cron syntax or @hourly-style descriptor
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level    string `json:"level" mapstructure:"level"` // debug, info, warn, error
	File     string `json:"file" mapstructure:"file"`
	Console  bool   `json:"console" mapstructure:"console"`
	Pretty   bool   `json:"pretty" mapstructure:"pretty"`
	MaxSize  int    `json:"max_size" mapstructure:"max_size"` // MB before rotation
	MaxAge   int    `json:"max_age" mapstructure:"max_age"`   // days
	Compress bool   `json:"compress" mapstructure:"compress"`
}

// MetricsConfig holds the scrape endpoint settings.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Listen  string `json:"listen" mapstructure:"listen"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Sessions: SessionsConfig{
			Cache: true,
		},
		Maintenance: MaintenanceConfig{
			Enabled:  true,
			Schedule: "@hourly",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Console:  true,
			Pretty:   false,
			MaxSize:  10,
			MaxAge:   7,
			Compress: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  "127.0.0.1:9464",
		},
	}
}

// String renders the config as indented JSON, for the status surface.
func (c *Config) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
