// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values fall back to the environment and
// then to CLI flag defaults.
type Config struct {
	// Server
	Port    int    `json:"port,omitempty"`     // HTTP listen port
	DataDir string `json:"data_dir,omitempty"` // Directory for reports, logs and CSV output

	// Enrichment
	APIKey  string `json:"api_key,omitempty"`  // Gemini API key; empty selects the local fallback provider
	JokeURL string `json:"joke_url,omitempty"` // Override for the joke API endpoint

	// Batch analysis
	Concurrency int `json:"concurrency,omitempty"` // URLs analyzed in parallel by the radar command
}

// Load reads configuration from a JSON file. An empty path returns an empty
// config so callers can rely on environment and flag values alone.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv fills empty fields from the environment: GEMINI_API_KEY,
// TEXTPIPE_DATA_DIR and TEXTPIPE_PORT. File values win over the environment.
func (c *Config) ApplyEnv() error {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.DataDir == "" {
		c.DataDir = os.Getenv("TEXTPIPE_DATA_DIR")
	}
	if c.Port == 0 {
		if raw := os.Getenv("TEXTPIPE_PORT"); raw != "" {
			port, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("invalid TEXTPIPE_PORT %q: %w", raw, err)
			}
			c.Port = port
		}
	}
	return nil
}

// Validate checks that the configuration has valid values. Unset fields are
// valid; defaults are applied by the CLI after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in [0, 65535]")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.DataDir != "" {
		if info, err := os.Stat(c.DataDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: 'data_dir' is not a directory: %s", c.DataDir)
		}
	}
	return nil
}
