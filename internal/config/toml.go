// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Timer    TimerFileConfig    `toml:"timer"`
	Practice PracticeFileConfig `toml:"practice"`
}

// TimerFileConfig maps timer-related settings.
type TimerFileConfig struct {
	HoldMs        *int  `toml:"hold-ms"`
	CooldownMs    *int  `toml:"cooldown-ms"`
	Inspection    *bool `toml:"inspection"`
	InspectionSec *int  `toml:"inspection-sec"`
}

// PracticeFileConfig maps practice-related settings.
type PracticeFileConfig struct {
	Puzzle *string `toml:"puzzle"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
