// Package config loads application configuration from an optional YAML
// file with environment variable overrides on top.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	AI        AIConfig        `yaml:"ai"`
	Server    ServerConfig    `yaml:"server"`
	Retention RetentionConfig `yaml:"retention"`
}

// DatabaseConfig holds persistence settings
type DatabaseConfig struct {
	// Path is the SQLite database file path
	// Default: ".healthsense/health.db"
	Path string `yaml:"path"`
}

// AIConfig holds model selection. The API key is never read from the YAML
// file; it comes from ANTHROPIC_API_KEY only.
type AIConfig struct {
	// Model is the primary model used for summaries and chat
	Model string `yaml:"model"`

	// LightModel is the cheaper model used for report interpretation
	LightModel string `yaml:"light_model"`
}

// ServerConfig holds the HTTP serve-mode settings
type ServerConfig struct {
	// Addr is the listen address for serve mode
	// Default: "localhost:8080"
	Addr string `yaml:"addr"`

	// AllowedOrigins are the CORS origins permitted to call the API
	// Default: ["*"]
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// RetentionConfig controls reading cleanup
type RetentionConfig struct {
	// ReadingDays is how long raw readings are kept (in days)
	// Readings only feed the 30-day window, but a margin is kept for
	// re-import. Default: 90, Range: 30-3650
	ReadingDays int `yaml:"reading_days"`

	// Vacuum controls whether cleanup runs VACUUM afterwards
	// Default: false
	Vacuum bool `yaml:"vacuum"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: ".healthsense/health.db",
		},
		AI: AIConfig{},
		Server: ServerConfig{
			Addr:           "localhost:8080",
			AllowedOrigins: []string{"*"},
		},
		Retention: RetentionConfig{
			ReadingDays: 90,
			Vacuum:      false,
		},
	}
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("HEALTHSENSE_DB"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("HEALTHSENSE_MODEL"); v != "" {
		c.AI.Model = v
	}
	if v := os.Getenv("HEALTHSENSE_MODEL_LIGHT"); v != "" {
		c.AI.LightModel = v
	}
	if v := os.Getenv("HEALTHSENSE_ADDR"); v != "" {
		c.Server.Addr = v
	}
}

// Validate checks if the configuration has valid values
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr cannot be empty")
	}
	if c.Retention.ReadingDays < 30 || c.Retention.ReadingDays > 3650 {
		return fmt.Errorf("retention reading_days must be between 30 and 3650 (got %d)",
			c.Retention.ReadingDays)
	}
	return nil
}
