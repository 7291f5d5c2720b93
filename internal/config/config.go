// Package config loads the editor settings from TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LocalFile is the config file looked up in the working directory.
const LocalFile = "tagedit.toml"

// Config holds the user settings merged from the config files.
type Config struct {
	NaturalSort bool   `koanf:"natural_sort"` // order directory loads so "2" precedes "10"
	AudioInfo   bool   `koanf:"audio_info"`   // show format, duration and sample rate
	ClearScreen bool   `koanf:"clear_screen"` // clear the terminal between menus
	LogFile     string `koanf:"log_file"`     // debug log destination, empty disables logging
}

// Default returns the settings used when no file sets them.
func Default() *Config {
	return &Config{
		NaturalSort: true,
		AudioInfo:   true,
		ClearScreen: true,
	}
}

// Load reads the user and local config files, then explicit if non-empty.
// Later files override earlier ones. A missing user or local file is
// skipped; a missing explicit file is an error.
func Load(explicit string) (*Config, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
	}
	return load(getConfigPaths(explicit))
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.LogFile = expandPath(cfg.LogFile)
	return cfg, nil
}

func getConfigPaths(explicit string) []string {
	paths := []string{
		// 1. $XDG_CONFIG_HOME/tagedit/config.toml
		filepath.Join(xdg.ConfigHome, "tagedit", "config.toml"),
		// 2. ./tagedit.toml
		LocalFile,
	}

	// 3. -config flag (highest priority)
	if explicit != "" {
		paths = append(paths, explicit)
	}

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
