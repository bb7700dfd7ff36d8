package config

import (
	"time"

	"github.com/opencamara/camara-go/camara"
)

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Output  OutputConfig  `mapstructure:"output"`
	Enrich  EnrichConfig  `mapstructure:"enrich"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`

	// File is the config file that was read, empty when running on defaults.
	File string `mapstructure:"-"`
}

// APIConfig holds the Open Data API connection settings
type APIConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxRetries  int           `mapstructure:"max_retries"`
	BackoffBase time.Duration `mapstructure:"backoff_base"`
	BackoffMax  time.Duration `mapstructure:"backoff_max"`
	UserAgent   string        `mapstructure:"user_agent"`
	PageSize    int           `mapstructure:"page_size"`
	MaxPages    int           `mapstructure:"max_pages"`
}

// OutputConfig controls how records are printed
type OutputConfig struct {
	Format string   `mapstructure:"format"`
	Color  bool     `mapstructure:"color"`
	Fields []string `mapstructure:"fields"`
}

// EnrichConfig contains settings for the bulk enrichment commands
type EnrichConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// FilterConfig contains named filter expressions, usable as --where @name
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// ToClientConfig converts the API section into the client's configuration.
func (c *Config) ToClientConfig() camara.Config {
	return camara.Config{
		BaseURL:     c.API.BaseURL,
		Timeout:     c.API.Timeout,
		MaxRetries:  c.API.MaxRetries,
		BackoffBase: c.API.BackoffBase,
		BackoffMax:  c.API.BackoffMax,
		UserAgent:   c.API.UserAgent,
		PageSize:    c.API.PageSize,
		MaxPages:    c.API.MaxPages,
	}
}
