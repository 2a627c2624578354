// Package config resolves runtime settings from defaults, an optional
// config.yaml in the data directory and HABITPET_* environment variables,
// in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dori/habitpet/internal/db"
	"github.com/dori/habitpet/internal/model"
)

// FileName is looked up inside the data directory
const FileName = "config.yaml"

const (
	DefaultUpdateURL       = "https://raw.githubusercontent.com/dori/habitpet/main/version.json"
	DefaultDistributionURL = "https://github.com/dori/habitpet/releases/latest"
	DefaultUpdateTimeout   = 5 * time.Second
)

// Config holds application configuration
type Config struct {
	DataDir         string        `yaml:"data_dir" env:"HABITPET_DATA_DIR"`
	DBPath          string        `yaml:"db_path" env:"HABITPET_DB_PATH"`
	UpdateURL       string        `yaml:"update_url" env:"HABITPET_UPDATE_URL"`
	DistributionURL string        `yaml:"distribution_url" env:"HABITPET_DISTRIBUTION_URL"`
	Theme           string        `yaml:"theme" env:"HABITPET_THEME"`
	Debug           bool          `yaml:"debug" env:"HABITPET_DEBUG"`
	Notifications   bool          `yaml:"notifications" env:"HABITPET_NOTIFICATIONS"`
	CheckUpdates    bool          `yaml:"check_updates" env:"HABITPET_CHECK_UPDATES"`
	UpdateTimeout   time.Duration `yaml:"update_timeout" env:"HABITPET_UPDATE_TIMEOUT"`
}

// Default returns the built-in configuration. DBPath is left empty and
// derived from DataDir once every layer has been applied.
func Default() *Config {
	return &Config{
		DataDir:         db.DefaultDataDir(),
		UpdateURL:       DefaultUpdateURL,
		DistributionURL: DefaultDistributionURL,
		Notifications:   true,
		CheckUpdates:    true,
		UpdateTimeout:   DefaultUpdateTimeout,
	}
}

// Load applies every layer on top of Default.
func Load() (*Config, error) {
	cfg := Default()

	// The data dir decides where config.yaml lives, so it is read first.
	if dir := os.Getenv("HABITPET_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}
	if err := cfg.LoadFile(filepath.Join(cfg.DataDir, FileName)); err != nil {
		return nil, err
	}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Complete(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile merges a YAML file into cfg. A missing file is not an error.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Complete validates cfg and derives the fields left empty
func (c *Config) Complete() error {
	if c.DataDir == "" {
		return errors.New("data dir must not be empty")
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, db.DefaultDBName)
	}
	if c.Theme != "" && !model.ThemeID(c.Theme).IsValid() {
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	if c.UpdateTimeout <= 0 {
		c.UpdateTimeout = DefaultUpdateTimeout
	}
	return nil
}

// LogPath is where debug logging goes
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "habitpet.log")
}

// LockPath guards against two widgets writing the same store
func (c *Config) LockPath() string {
	return filepath.Join(c.DataDir, "habitpet.lock")
}
