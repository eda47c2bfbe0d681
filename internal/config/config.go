// Package config persists user settings in ~/.config/midikeys/config.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/leandrodaf/midikeys/sdk/contracts"
)

// Config is the on-disk configuration.
type Config struct {
	SettleMarginMs    int    `json:"settleMarginMs"`
	StartDelayMs      int    `json:"startDelayMs"`
	CancelKey         string `json:"cancelKey"`
	BasePitch         int    `json:"basePitch"`
	LogLevel          string `json:"logLevel"`
	LogFile           string `json:"logFile,omitempty"`
	DriftCompensation bool   `json:"driftCompensation,omitempty"`
	LiveDevice        int    `json:"liveDevice,omitempty"`
}

// DefaultConfig returns a config matching the player defaults
func DefaultConfig() *Config {
	return &Config{
		SettleMarginMs: 12,
		StartDelayMs:   2000,
		CancelKey:      string(contracts.KeyEscape),
		BasePitch:      36,
		LogLevel:       "info",
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "midikeys"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config at the default path, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. Missing fields keep their defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges and names.
func (c *Config) Validate() error {
	if c.SettleMarginMs < 0 || c.StartDelayMs < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	if c.BasePitch < 0 || c.BasePitch > 127 {
		return fmt.Errorf("basePitch %d out of range 0-127", c.BasePitch)
	}
	if _, ok := contracts.ParseLogLevel(c.LogLevel); !ok {
		return fmt.Errorf("unknown logLevel %q", c.LogLevel)
	}
	if c.CancelKey != "" && !knownKey(c.CancelKey) {
		return fmt.Errorf("unknown cancelKey %q", c.CancelKey)
	}
	if !contracts.PhysicalKey(c.CancelKey).Cancellable() {
		return fmt.Errorf("cancelKey %q is pressed during playback", c.CancelKey)
	}
	return nil
}

func knownKey(name string) bool {
	for _, k := range contracts.KnownPhysicalKeys {
		if string(k) == name {
			return true
		}
	}
	return false
}

// PlayerOptions converts the config into player options.
func (c *Config) PlayerOptions() []contracts.PlayerOption {
	level, _ := contracts.ParseLogLevel(c.LogLevel)
	return []contracts.PlayerOption{
		contracts.WithLogLevel(level),
		contracts.WithSettleMargin(time.Duration(c.SettleMarginMs) * time.Millisecond),
		contracts.WithStartDelay(time.Duration(c.StartDelayMs) * time.Millisecond),
		contracts.WithCancelKey(contracts.PhysicalKey(c.CancelKey)),
		contracts.WithBasePitch(uint8(c.BasePitch)),
		contracts.WithDriftCompensation(c.DriftCompensation),
	}
}
