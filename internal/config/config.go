// Package config loads the workspace configuration from
// <workspace>/.astdb/config.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/astdb-dev/astdb/internal/dblock"
)

// Config is the root of config.toml.
type Config struct {
	Lock LockConfig `toml:"lock"`
}

// LockConfig carries the default lock options for this workspace. Zero
// values fall back to the built-in defaults.
type LockConfig struct {
	TimeoutMs    int64 `toml:"timeout_ms"`
	MaxRetries   int   `toml:"max_retries"`
	RetryDelayMs int64 `toml:"retry_delay_ms"`
}

// Default returns a config populated with the built-in lock defaults.
func Default() *Config {
	return &Config{
		Lock: LockConfig{
			TimeoutMs:    dblock.DefaultTimeout.Milliseconds(),
			MaxRetries:   dblock.DefaultMaxRetries,
			RetryDelayMs: dblock.DefaultRetryDelay.Milliseconds(),
		},
	}
}

// Load reads the config at path. A missing file yields the defaults;
// missing keys fall back field-wise.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	def := Default()
	if cfg.Lock.TimeoutMs == 0 {
		cfg.Lock.TimeoutMs = def.Lock.TimeoutMs
	}
	if cfg.Lock.MaxRetries == 0 {
		cfg.Lock.MaxRetries = def.Lock.MaxRetries
	}
	if cfg.Lock.RetryDelayMs == 0 {
		cfg.Lock.RetryDelayMs = def.Lock.RetryDelayMs
	}
	return &cfg, nil
}

// Write persists the config at path, creating the parent directory if
// needed.
func Write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// LockOptions converts the configured lock defaults into dblock options.
func (c *Config) LockOptions() dblock.Options {
	return dblock.Options{
		Timeout:    time.Duration(c.Lock.TimeoutMs) * time.Millisecond,
		MaxRetries: c.Lock.MaxRetries,
		RetryDelay: time.Duration(c.Lock.RetryDelayMs) * time.Millisecond,
	}
}
