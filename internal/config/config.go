package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	API struct {
		BaseURL        string `yaml:"base_url"`
		Key            string `yaml:"key"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		MaxRetries     int    `yaml:"max_retries"`
		MinDelayMillis int    `yaml:"min_delay_millis"`
		Workers        int    `yaml:"workers"`
	} `yaml:"api"`
	Data struct {
		Dir       string `yaml:"dir"`
		StateFile string `yaml:"state_file"`
	} `yaml:"data"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		UpdateCron string `yaml:"update_cron"`
	} `yaml:"schedule"`
	Generator struct {
		DefaultStrategy string `yaml:"default_strategy"`
		MaxSets         int    `yaml:"max_sets"`
	} `yaml:"generator"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
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
	if v := os.Getenv("LOTTO_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("LOTTO_API_KEY"); v != "" {
		cfg.API.Key = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_UPDATE"); v != "" {
		cfg.Schedule.UpdateCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("FETCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.API.Workers = n
		}
	}

	// Defaults
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://canada-lottery.p.rapidapi.com"
	}
	if cfg.API.TimeoutSeconds == 0 {
		cfg.API.TimeoutSeconds = 10
	}
	if cfg.API.MaxRetries == 0 {
		cfg.API.MaxRetries = 3
	}
	if cfg.API.MinDelayMillis == 0 {
		// RapidAPI budget is 50 requests/minute; 1350ms keeps a safety margin.
		cfg.API.MinDelayMillis = 1350
	}
	if cfg.API.Workers == 0 {
		cfg.API.Workers = 10
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	if cfg.Data.StateFile == "" {
		cfg.Data.StateFile = "data/app_state.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/lotto_sentinel.db"
	}
	if cfg.Schedule.UpdateCron == "" {
		cfg.Schedule.UpdateCron = "0 30 22 * * *"
	}
	if cfg.Generator.DefaultStrategy == "" {
		cfg.Generator.DefaultStrategy = "frequency"
	}
	if cfg.Generator.MaxSets == 0 {
		cfg.Generator.MaxSets = 10
	}

	return cfg, nil
}

// Validate checks that all required fields are set and sane.
func (c *Config) Validate() error {
	if c.API.Key == "" {
		return fmt.Errorf("api.key is required")
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be positive")
	}
	if c.API.MaxRetries < 0 {
		return fmt.Errorf("api.max_retries must not be negative")
	}
	if c.API.Workers < 1 || c.API.Workers > 50 {
		return fmt.Errorf("api.workers must be between 1 and 50")
	}
	switch c.Generator.DefaultStrategy {
	case "random", "frequency", "balanced":
	default:
		return fmt.Errorf("generator.default_strategy must be one of random, frequency, balanced")
	}
	if c.Generator.MaxSets < 1 {
		return fmt.Errorf("generator.max_sets must be positive")
	}
	return nil
}
