package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds regulations.gov API connection details
type APIConfig struct {
	Key       string        `mapstructure:"key"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// FilterConfig contains file link filter definitions
type FilterConfig struct {
	// Default is applied to document links when no filter flag is given
	Default string            `mapstructure:"default"`
	Presets map[string]string `mapstructure:"presets"`
}

// OutputConfig controls how responses are printed
type OutputConfig struct {
	Pretty bool `mapstructure:"pretty"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
