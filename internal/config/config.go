// Package config loads the optional treevc user configuration.
//
// Configuration is a YAML file; all fields have working defaults so a
// missing file is not an error. Lookup order: $TREEVC_CONFIG, then
// ./treevc.yaml, then ~/.config/treevc/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents treevc configuration.
type Config struct {
	User  UserConfig  `yaml:"user"`
	Shell ShellConfig `yaml:"shell"`
	Color ColorConfig `yaml:"color"`
}

// UserConfig holds user identity information, recorded as the author
// of snapshots.
type UserConfig struct {
	Name string `yaml:"name"`
}

// ShellConfig holds interactive shell settings.
type ShellConfig struct {
	Prompt string `yaml:"prompt,omitempty"`
}

// ColorConfig holds color settings.
type ColorConfig struct {
	UI bool `yaml:"ui"`
}

// Default returns a config with sensible defaults.
func Default() *Config {
	return &Config{
		Shell: ShellConfig{Prompt: "treevc> "},
		Color: ColorConfig{UI: true},
	}
}

// Load reads the first config file found in the lookup order and
// merges it over the defaults. A missing file yields the defaults.
func Load() (*Config, error) {
	cfg := Default()

	path, ok := findConfigFile()
	if !ok {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Shell.Prompt == "" {
		cfg.Shell.Prompt = Default().Shell.Prompt
	}
	return cfg, nil
}

func findConfigFile() (string, bool) {
	var candidates []string
	if env := os.Getenv("TREEVC_CONFIG"); env != "" {
		candidates = append(candidates, env)
	}
	candidates = append(candidates, "treevc.yaml")
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "treevc", "config.yaml"))
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
