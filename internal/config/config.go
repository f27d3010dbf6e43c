// Package config loads the client configuration: where the backend API
// lives and how the console logs. Configuration is a YAML file in the same
// directory as the persisted session, with environment overrides on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const configFile = "config.yaml"

// DefaultAPIURL is used when neither the config file nor the environment
// names a backend.
const DefaultAPIURL = "http://localhost:8000"

// Config is the client configuration.
type Config struct {
	// APIURL is the backend base URL.
	APIURL string `yaml:"api_url"`

	// RequestTimeout bounds each HTTP request. Zero keeps the client
	// default.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL:    DefaultAPIURL,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads <dir>/config.yaml when it exists, layers environment overrides
// on top, and fills remaining gaps with defaults. A missing file is not an
// error; a malformed one is.
func Load(dir string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, configFile))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
		// Defaults apply.
	default:
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	if url := os.Getenv("ADCTL_API_URL"); url != "" {
		cfg.APIURL = url
	}
	if level := os.Getenv("ADCTL_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	return cfg, nil
}

// Save writes the configuration to <dir>/config.yaml.
func Save(dir string, cfg Config) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFile), data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
