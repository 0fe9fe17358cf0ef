package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	AlphaVantage struct {
		APIKey  string `yaml:"api_key"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"alphavantage"`
	Schedule struct {
		ApplyCron string `yaml:"apply_cron"`
	} `yaml:"schedule"`
}

// LoadConfig reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error: defaults and the environment
// alone are a valid configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STOCKFOLIO_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		cfg.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("ALPHAVANTAGE_BASE_URL"); v != "" {
		cfg.AlphaVantage.BaseURL = v
	}
	if v := os.Getenv("STOCKFOLIO_APPLY_CRON"); v != "" {
		cfg.Schedule.ApplyCron = v
	}

	// Defaults
	if cfg.Database.Path == "" {
		cfg.Database.Path = "stockfolio.db"
	}
	if cfg.Schedule.ApplyCron == "" {
		// Once a day after US market close.
		cfg.Schedule.ApplyCron = "0 22 * * 1-5"
	}

	return cfg, nil
}
