// Package config handles the toolkit's own settings file.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds toolkit settings loaded from config.yaml in the base
// directory. The flat key=value files the store operates on are separate;
// this file only tunes the toolkit itself.
type Config struct {
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Probe struct {
		Count          int `yaml:"count"`
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"probe"`
	Actor string `yaml:"actor"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	c := &Config{}
	c.Log.Level = "info"
	c.Probe.Count = 1
	c.Probe.TimeoutSeconds = 3
	c.Actor = "$USER"
	return c
}

// Load loads configuration from config.yaml in the given base directory.
// If the file doesn't exist, returns default configuration.
// Environment variables in values are expanded after loading.
func Load(baseDir string) (*Config, error) {
	cfg := Default()

	configPath := filepath.Join(baseDir, "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ExpandEnvVars()
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.ExpandEnvVars()
	return cfg, nil
}

// ExpandEnvVars expands environment variables in configuration values.
// Supports ${VAR} and $VAR syntax.
func (c *Config) ExpandEnvVars() {
	c.Actor = expandEnv(c.Actor)
	c.Log.Level = expandEnv(c.Log.Level)
}

// expandEnv expands environment variables in a string.
// Supports ${VAR} and $VAR syntax.
func expandEnv(s string) string {
	// First handle ${VAR} syntax
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})

	// Then handle $VAR syntax (only for simple variable names)
	re = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		if strings.HasPrefix(match, "$") && os.Getenv(varName) == "" {
			// Return empty for missing env vars
			return ""
		}
		return match
	})

	return s
}
