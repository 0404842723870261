package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the file-based configuration for the API server. Environment
// variables cover secrets and connection details; the YAML file covers the
// knobs an operator tunes per deployment.
type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Sweeper struct {
		Enabled         bool `yaml:"enabled"`
		IntervalSeconds int  `yaml:"interval_seconds"`
		Workers         int  `yaml:"workers"`
	} `yaml:"sweeper"`
}

func (c *Config) sweeperInterval() time.Duration {
	return time.Duration(c.Sweeper.IntervalSeconds) * time.Second
}

func defaultConfig() *Config {
	var cfg Config
	cfg.Server.Port = "8080"
	cfg.Server.AllowedOrigins = []string{"*"}
	cfg.Sweeper.Enabled = true
	cfg.Sweeper.IntervalSeconds = 15
	cfg.Sweeper.Workers = 4
	return &cfg
}

// loadConfig reads the YAML config at path, falling back to defaults when
// the file does not exist.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Sweeper.IntervalSeconds <= 0 {
		cfg.Sweeper.IntervalSeconds = 15
	}
	if cfg.Sweeper.Workers < 1 {
		cfg.Sweeper.Workers = 1
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
