package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the source configuration file, applies defaults and validates
// the result. A missing file is not an error: the built-in defaults describe
// the known production sources.
func Load(path string) (*Sources, error) {
	var sources Sources

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		slog.Debug("Source configuration file not found, using defaults", "path", path)
	case err != nil:
		return nil, fmt.Errorf("failed to read source configuration: %w", err)
	default:
		if err := yaml.Unmarshal(data, &sources); err != nil {
			return nil, fmt.Errorf("failed to parse source configuration: %w", err)
		}
		slog.Debug("Loaded source configuration", "path", path)
	}

	setDefaults(&sources)

	if err := validate(&sources); err != nil {
		return nil, fmt.Errorf("invalid source configuration %s: %w", path, err)
	}

	return &sources, nil
}

func setDefaults(s *Sources) {
	if s.Praza.BaseURL == "" {
		s.Praza.BaseURL = "https://praza.gal"
	}
	if s.Praza.ListingURL == "" {
		s.Praza.ListingURL = "https://praza.gal/%s/todo?p=%d"
	}
	if s.Praza.FeedURL == "" {
		s.Praza.FeedURL = "https://praza.gal/rss"
	}
	if s.NosDiario.BaseURL == "" {
		s.NosDiario.BaseURL = "https://www.nosdiario.gal"
	}
	if s.Fetch.Timeout == 0 {
		s.Fetch.Timeout = 10 // seconds
	}
	if s.Fetch.MaxRetries == 0 {
		s.Fetch.MaxRetries = 3
	}
	if s.Fetch.RetryDelay == 0 {
		s.Fetch.RetryDelay = 2.0 // seconds
	}
	if s.Fetch.RequestDelay == 0 {
		s.Fetch.RequestDelay = 1.0 // seconds
	}
}

func validate(s *Sources) error {
	if !strings.HasPrefix(s.Praza.BaseURL, "http") {
		return fmt.Errorf("praza base_url must be an HTTP URL")
	}
	if !strings.Contains(s.Praza.ListingURL, "%s") || !strings.Contains(s.Praza.ListingURL, "%d") {
		return fmt.Errorf("praza listing_url must contain %%s (category) and %%d (page) placeholders")
	}
	if s.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch timeout must be non-negative")
	}
	if s.Fetch.MaxRetries < 1 {
		return fmt.Errorf("fetch max_retries must be at least 1")
	}
	if s.Fetch.RetryDelay < 0 || s.Fetch.RequestDelay < 0 {
		return fmt.Errorf("fetch delays must be non-negative")
	}
	return nil
}
