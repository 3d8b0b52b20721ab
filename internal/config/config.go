// Package config provides configuration loading for the viewer.
//
// Configuration is optional: a missing file yields defaults, and a
// couple of environment variables override the file for quick
// toggling without editing YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the full viewer configuration.
type Config struct {
	Log LogConfig `yaml:"log"`
	UI  UIConfig  `yaml:"ui"`
}

// LogConfig controls the session log file.
type LogConfig struct {
	// Enabled turns file logging on. Also set by EXEVIEWER_LOG.
	Enabled bool `yaml:"enabled"`
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// File is the log file path, relative to the working directory.
	File string `yaml:"file"`
}

// UIConfig holds presentation options.
type UIConfig struct {
	// Theme selects the accent palette: "dark" or "light".
	Theme string `yaml:"theme"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Enabled: false,
			Level:   "info",
			File:    "exeviewer.log",
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// Path returns the config file location: $EXEVIEWER_CONFIG if set,
// otherwise ~/.config/exeviewer/config.yaml.
func Path() string {
	if p := os.Getenv("EXEVIEWER_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "exeviewer", "config.yaml")
}

// Load reads the config file at path, falling back to defaults when
// the file does not exist, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	applyEnv(&cfg)

	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv layers environment variables over the file values.
func applyEnv(cfg *Config) {
	if os.Getenv("EXEVIEWER_LOG") != "" {
		cfg.Log.Enabled = true
	}
	if level := os.Getenv("EXEVIEWER_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
}

func validate(cfg Config) error {
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", cfg.Log.Level)
	}
	switch cfg.UI.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("invalid theme %q", cfg.UI.Theme)
	}
	return nil
}
