// Package config provides configuration loading and validation for the jobdesk CLI
// and console server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultAPIURL is the backend base URL used when nothing else is configured.
const DefaultAPIURL = "http://localhost:8066/api/v1"

// DefaultATSTimeoutSeconds bounds an ATS analysis, which can run for minutes.
const DefaultATSTimeoutSeconds = 300

// Config represents the client configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, environment variables or CLI flags.
type Config struct {
	APIURL            string `json:"api_url,omitempty" validate:"omitempty,url"`     // Backend base URL
	IDToken           string `json:"id_token,omitempty"`                             // Identity provider token
	TimeoutSeconds    int    `json:"timeout_seconds,omitempty" validate:"min=0"`     // Per-request timeout, 0 means none
	ATSTimeoutSeconds int    `json:"ats_timeout_seconds,omitempty" validate:"min=0"` // Timeout for ATS analysis
	Output            string `json:"output,omitempty" validate:"omitempty,oneof=table json yaml"`
	ConsolePort       int    `json:"console_port,omitempty" validate:"min=0,max=65535"`
	DownloadDir       string `json:"download_dir,omitempty"` // Where downloaded PDFs/DOCX files go
	Verbose           bool   `json:"verbose,omitempty"`
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
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.DownloadDir != "" {
		info, err := os.Stat(c.DownloadDir)
		if err != nil {
			return fmt.Errorf("config error: download_dir not found: %s", c.DownloadDir)
		}
		if !info.IsDir() {
			return fmt.Errorf("config error: download_dir is not a directory: %s", c.DownloadDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file and environment values beneath CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIURL == "" {
		result.APIURL = defaults.APIURL
	}
	if result.IDToken == "" {
		result.IDToken = defaults.IDToken
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.DownloadDir == "" {
		result.DownloadDir = defaults.DownloadDir
	}

	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.ATSTimeoutSeconds == 0 {
		result.ATSTimeoutSeconds = defaults.ATSTimeoutSeconds
	}
	if result.ConsolePort == 0 {
		result.ConsolePort = defaults.ConsolePort
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge

	return result
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		APIURL:            DefaultAPIURL,
		ATSTimeoutSeconds: DefaultATSTimeoutSeconds,
		Output:            "table",
		ConsolePort:       3000,
		DownloadDir:       ".",
	}
}

// Timeout returns the generic request timeout. Zero means no client-side timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ATSTimeout returns the timeout for ATS analysis requests.
func (c *Config) ATSTimeout() time.Duration {
	if c.ATSTimeoutSeconds <= 0 {
		return DefaultATSTimeoutSeconds * time.Second
	}
	return time.Duration(c.ATSTimeoutSeconds) * time.Second
}
