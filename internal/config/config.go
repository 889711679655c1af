// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Experience estimation modes accepted in configuration.
const (
	ExperienceModeRange  = "range"
	ExperienceModeSimple = "simple"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Vocabulary string `json:"vocabulary,omitempty"` // Path to a vocabulary JSON file overriding built-in tables
	Job        string `json:"job,omitempty"`        // Path to a job requirement JSON file
	JobURL     string `json:"job_url,omitempty"`    // URL to fetch a job posting from

	// Extraction
	NERModel          string `json:"ner_model,omitempty"`           // Gemini model used for entity recognition
	NERTimeoutSeconds int    `json:"ner_timeout_seconds,omitempty"` // Per-resume recognition timeout
	ExperienceMode    string `json:"experience_mode,omitempty"`     // "range" or "simple" experience estimation

	// Scoring
	Weights map[string]float64 `json:"weights,omitempty"` // Scoring weight overrides, keyed by dimension

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Use headless browser for SPA job boards
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	LogJSON     bool   `json:"log_json,omitempty"`     // Emit logs as JSON instead of console lines
	Concurrency int    `json:"concurrency,omitempty"`  // Parallel extraction and scoring limit
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for screening history
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	switch c.ExperienceMode {
	case "", ExperienceModeRange, ExperienceModeSimple:
	default:
		return fmt.Errorf("config error: 'experience_mode' must be %q or %q", ExperienceModeRange, ExperienceModeSimple)
	}

	if c.NERTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'ner_timeout_seconds' must be non-negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	if c.Vocabulary != "" {
		if _, err := os.Stat(c.Vocabulary); os.IsNotExist(err) {
			return fmt.Errorf("config error: vocabulary file not found: %s", c.Vocabulary)
		}
	}
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Vocabulary == "" {
		result.Vocabulary = defaults.Vocabulary
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.NERModel == "" {
		result.NERModel = defaults.NERModel
	}
	if result.ExperienceMode == "" {
		result.ExperienceMode = defaults.ExperienceMode
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.NERTimeoutSeconds == 0 {
		result.NERTimeoutSeconds = defaults.NERTimeoutSeconds
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Map fields: use default if unset
	if result.Weights == nil {
		result.Weights = defaults.Weights
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// NERTimeout converts the configured timeout to a duration. Zero means
// the recognizer's own default applies.
func (c *Config) NERTimeout() time.Duration {
	if c.NERTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.NERTimeoutSeconds) * time.Second
}
