package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	sources, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Expected no error for missing file, got: %v", err)
	}

	if sources.Praza.BaseURL != "https://praza.gal" {
		t.Errorf("Unexpected praza base_url: %s", sources.Praza.BaseURL)
	}
	if sources.Fetch.Timeout != 10 {
		t.Errorf("Expected default timeout 10, got: %d", sources.Fetch.Timeout)
	}
	if sources.Fetch.MaxRetries != 3 {
		t.Errorf("Expected default max_retries 3, got: %d", sources.Fetch.MaxRetries)
	}
}

func TestLoadFile(t *testing.T) {
	yaml := `
praza:
  base_url: https://praza.example
  listing_url: https://praza.example/%s/todo?p=%d
fetch:
  timeout: 5
  request_delay: 0.5
`
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if sources.Praza.BaseURL != "https://praza.example" {
		t.Errorf("Unexpected base_url: %s", sources.Praza.BaseURL)
	}
	if sources.Fetch.Timeout != 5 {
		t.Errorf("Expected timeout 5, got: %d", sources.Fetch.Timeout)
	}
	if sources.Fetch.RequestDelay != 0.5 {
		t.Errorf("Expected request_delay 0.5, got: %f", sources.Fetch.RequestDelay)
	}
	// Unset values still receive defaults
	if sources.Fetch.MaxRetries != 3 {
		t.Errorf("Expected default max_retries 3, got: %d", sources.Fetch.MaxRetries)
	}
	if sources.NosDiario.BaseURL != "https://www.nosdiario.gal" {
		t.Errorf("Expected default nosdiario base_url, got: %s", sources.NosDiario.BaseURL)
	}
}

func TestLoadInvalidListingURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte("praza:\n  listing_url: https://praza.gal/todo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Expected validation error for listing_url without placeholders")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte("praza: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Expected parse error for malformed YAML")
	}
}
