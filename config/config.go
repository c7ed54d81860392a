// Package config loads budget-cli settings from a JSON, YAML or TOML file
// with environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/indiekitai/budget-cli/logging"
)

// Config represents the config file structure
type Config struct {
	ArchivePath   string  `json:"archive_path" yaml:"archive_path" toml:"archive_path"`
	SpendingLimit float64 `json:"spending_limit,omitempty" yaml:"spending_limit,omitempty" toml:"spending_limit,omitempty"` // percent of income, 0 disables
	Port          int     `json:"port" yaml:"port" toml:"port"`
	LogLevel      string  `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// Dir returns the data directory, ~/.budget-cli
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".budget-cli"), nil
}

// DefaultPath returns ~/.budget-cli/config.json
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Default returns the built-in settings
func Default() *Config {
	cfg := &Config{
		Port:     8080,
		LogLevel: "info",
	}
	if dir, err := Dir(); err == nil {
		cfg.ArchivePath = filepath.Join(dir, "archive.db")
	}
	return cfg
}

// Load reads the config file at path on top of the defaults. A missing
// file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json", "":
		err = json.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides settings from the environment, after loading a .env
// file from the working directory if one exists.
func (c *Config) ApplyEnv() error {
	_ = godotenv.Load()

	if v := os.Getenv("BUDGET_ARCHIVE"); v != "" {
		c.ArchivePath = v
	}
	if v := os.Getenv("BUDGET_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("BUDGET_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid BUDGET_PORT '%s': must be a number", v)
		}
		c.Port = port
	}
	if v := os.Getenv("BUDGET_SPENDING_LIMIT"); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid BUDGET_SPENDING_LIMIT '%s': must be a number", v)
		}
		c.SpendingLimit = limit
	}
	return nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Port))
	}
	if c.SpendingLimit < 0 {
		errs = append(errs, fmt.Sprintf("invalid spending limit %.2f: must not be negative", c.SpendingLimit))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Level returns the configured slog level, info if unset or unknown
func (c *Config) Level() slog.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}

// Save writes c to path in the format implied by its extension
func Save(path string, c *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		data, err = toml.Marshal(*c)
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
