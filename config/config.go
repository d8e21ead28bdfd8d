package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config represents configuration for the cubex command
type Config struct {
	SessionType  string        `envconfig:"CUBEX_SESSION_TYPE"`
	SessionURL   string        `envconfig:"CUBEX_SESSION_URL"`
	ObjectID     string        `envconfig:"CUBEX_OBJECT_ID"`
	Selections   []string      `envconfig:"CUBEX_SELECTIONS"`
	PageSize     int           `envconfig:"CUBEX_PAGE_SIZE"`
	MaxPages     int           `envconfig:"CUBEX_MAX_PAGES"`
	StartRow     int           `envconfig:"CUBEX_START_ROW"`
	PageDelay    time.Duration `envconfig:"CUBEX_PAGE_DELAY"`
	OutputFormat string        `envconfig:"CUBEX_OUTPUT_FORMAT"`
	OutputPath   string        `envconfig:"CUBEX_OUTPUT_PATH"`
}

var cfg *Config

// Get returns the default config with any modifications through environment
// variables
func Get() (*Config, error) {
	if cfg != nil {
		return cfg, nil
	}

	cfg = &Config{
		SessionType:  "sqlite",
		SessionURL:   "cubex.db",
		PageSize:     1000,
		MaxPages:     10,
		OutputFormat: "csv",
	}

	return cfg, envconfig.Process("", cfg)
}
