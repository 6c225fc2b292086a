package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the simulator configuration, loaded from YAML. Zero fields
// keep their defaults.
type Config struct {
	// StorePath is the file holding the persisted settings record.
	StorePath string `yaml:"store_path"`
	// ViewportRows is the emulated display height in menu rows.
	ViewportRows int `yaml:"viewport_rows"`
	// DebounceMs overrides the switch debounce window.
	DebounceMs int64 `yaml:"debounce_ms"`
	// LongClickMs overrides the long click threshold.
	LongClickMs int64 `yaml:"long_click_ms"`
	// HeartbeatSeconds is the uptime announcement interval.
	HeartbeatSeconds int `yaml:"heartbeat_seconds"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		StorePath:        "pulsegen-settings.bin",
		ViewportRows:     4,
		HeartbeatSeconds: 5,
	}
}

// LoadConfig reads the YAML file at path, overlaying the defaults. An
// empty path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, err
	}
	if cfg.ViewportRows < 1 {
		cfg.ViewportRows = 4
	}
	return cfg, nil
}
