// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	DBPath       string `json:"db_path,omitempty"`       // Path to SQLite database file
	BackupDir    string `json:"backup_dir,omitempty"`    // Directory for resume file backups
	Credentials  string `json:"credentials,omitempty"`   // Path to Google service account JSON
	YouratorFile string `json:"yourator_file,omitempty"` // Path to Yourator xlsx export

	// Behavior
	SkipValidation bool `json:"skip_validation,omitempty"` // Skip data validation on import
	Verbose        bool `json:"verbose,omitempty"`         // Print detailed import summaries
	ShowLimit      int  `json:"show_limit,omitempty"`      // Default row limit for show
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
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

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.ShowLimit < 0 {
		return fmt.Errorf("config error: 'show_limit' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.Credentials != "" {
		if _, err := os.Stat(c.Credentials); os.IsNotExist(err) {
			return fmt.Errorf("config error: credentials file not found: %s", c.Credentials)
		}
	}
	if c.YouratorFile != "" {
		if _, err := os.Stat(c.YouratorFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: yourator file not found: %s", c.YouratorFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DBPath == "" {
		result.DBPath = defaults.DBPath
	}
	if result.BackupDir == "" {
		result.BackupDir = defaults.BackupDir
	}
	if result.Credentials == "" {
		result.Credentials = defaults.Credentials
	}
	if result.YouratorFile == "" {
		result.YouratorFile = defaults.YouratorFile
	}

	// Int fields: use default if zero
	if result.ShowLimit == 0 {
		result.ShowLimit = defaults.ShowLimit
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
