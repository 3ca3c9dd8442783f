// Package config loads settings for the btrace command. Only the CLI uses
// it: the library reads nothing but $BTRACE_LOG, so embedding programs are
// not coupled to any file format.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/majorcontext/btrace"
)

// Config holds btrace CLI settings from ~/.btrace/config.yaml.
type Config struct {
	Log LogConfig `yaml:"log"`
}

// LogConfig holds trace log settings.
type LogConfig struct {
	// Path is the default trace log destination for `btrace run`.
	Path string `yaml:"path"`
}

// Default returns the default configuration: no destination, so tracing is
// off until one is chosen explicitly.
func Default() *Config {
	return &Config{}
}

// Load reads ~/.btrace/config.yaml and applies environment overrides.
func Load() (*Config, error) {
	cfg := Default()

	path := filepath.Join(Dir(), "config.yaml")
	if data, err := os.ReadFile(path); err == nil {
		_ = yaml.Unmarshal(data, cfg) // Ignore unmarshal errors, use defaults
	}

	if v := os.Getenv(btrace.LogEnvVar); v != "" {
		cfg.Log.Path = v
	}

	return cfg, nil
}

// Dir returns the path to ~/.btrace.
func Dir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".btrace")
	}
	return filepath.Join(homeDir, ".btrace")
}
