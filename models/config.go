// Package models defines data structures for configuration and analysis results.
package models

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ExtractFormatPlain = "plain"
	ExtractFormatHTML  = "html"
)

// Config holds runtime configuration. Values come from an optional YAML file
// and may be overridden by CLI flags.
type Config struct {
	APIURL          string        `yaml:"api_url"`
	SiteURL         string        `yaml:"site_url"`
	CacheDir        string        `yaml:"cache_dir"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	Timeout         time.Duration `yaml:"timeout"`
	MaxPages        int           `yaml:"max_pages"`
	WorkerCount     int           `yaml:"workers"`
	UserAgent       string        `yaml:"user_agent"`
	StopWordsPath   string        `yaml:"stopwords_path"`
	StopWordsURL    string        `yaml:"stopwords_url"`
	ExtractFormat   string        `yaml:"extract_format"`
	ArticleFallback bool          `yaml:"article_fallback"`
	EnglishOnly     bool          `yaml:"english_only"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		APIURL:        "https://en.wikipedia.org/w/api.php",
		SiteURL:       "https://en.wikipedia.org",
		CacheDir:      "cache",
		CacheTTL:      7 * 24 * time.Hour,
		Timeout:       30 * time.Second,
		MaxPages:      500,
		WorkerCount:   4,
		ExtractFormat: ExtractFormatPlain,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig. A missing
// file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the analyzer cannot run with.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("config: api_url is required")
	}
	if c.CacheDir == "" {
		return errors.New("config: cache_dir is required")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("config: cache_ttl must be positive, got %s", c.CacheTTL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: timeout must not be negative, got %s", c.Timeout)
	}
	if c.MaxPages <= 0 || c.MaxPages > 500 {
		return fmt.Errorf("config: max_pages must be between 1 and 500, got %d", c.MaxPages)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("config: workers must be positive, got %d", c.WorkerCount)
	}
	switch c.ExtractFormat {
	case ExtractFormatPlain, ExtractFormatHTML:
	default:
		return fmt.Errorf("config: extract_format must be %q or %q, got %q", ExtractFormatPlain, ExtractFormatHTML, c.ExtractFormat)
	}
	return nil
}
