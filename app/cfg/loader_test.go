package cfg

import (
	"strings"
	"testing"
)

func TestLoadDownloadCategories(t *testing.T) {
	cfg, err := Load([]string{"praza", "-d", "-c", "Cultura", "-c", "Deportes"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.Source != "praza" {
		t.Errorf("Expected source 'praza', got: %s", cfg.Source)
	}
	if cfg.Mode != ModeDownload {
		t.Errorf("Expected download mode, got: %s", cfg.Mode)
	}
	if cfg.DownloadFrom != "category" {
		t.Errorf("Expected download from 'category', got: %s", cfg.DownloadFrom)
	}
	if len(cfg.Categories) != 2 {
		t.Errorf("Expected 2 categories, got: %v", cfg.Categories)
	}
}

func TestLoadParseAll(t *testing.T) {
	cfg, err := Load([]string{"nosdiario", "--parse"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.Mode != ModeParse {
		t.Errorf("Expected parse mode, got: %s", cfg.Mode)
	}
	if cfg.ParseTarget != "" {
		t.Errorf("Expected empty parse target (all files), got: %s", cfg.ParseTarget)
	}
}

func TestLoadParseSingleFile(t *testing.T) {
	cfg, err := Load([]string{"praza", "--parse", "2023/05/praza_20230512_nova.html"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.ParseTarget != "2023/05/praza_20230512_nova.html" {
		t.Errorf("Unexpected parse target: %s", cfg.ParseTarget)
	}
}

func TestLoadRejectsDownloadAndParse(t *testing.T) {
	_, err := Load([]string{"praza", "--download", "--parse"})
	if err == nil {
		t.Fatal("Expected mutual exclusion error")
	}
}

func TestLoadRequiresDownloadOrParse(t *testing.T) {
	_, err := Load([]string{"praza"})
	if err == nil {
		t.Fatal("Expected error when neither --download nor --parse given")
	}
}

func TestLoadRejectsRSSWithCategoryFilter(t *testing.T) {
	_, err := Load([]string{"praza", "--download", "rss", "-c", "Cultura"})
	if err == nil {
		t.Fatal("Expected rejection of --category with --download rss")
	}
	if !strings.Contains(err.Error(), "rss") {
		t.Errorf("Expected rss mentioned in error, got: %v", err)
	}
}

func TestLoadAllowsRSSWithoutCategoryFilter(t *testing.T) {
	cfg, err := Load([]string{"praza", "--download", "rss"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.DownloadFrom != "rss" {
		t.Errorf("Expected download from 'rss', got: %s", cfg.DownloadFrom)
	}
}

func TestLoadRejectsNosDiarioDownload(t *testing.T) {
	_, err := Load([]string{"nosdiario", "--download"})
	if err == nil {
		t.Fatal("Expected rejection of nosdiario download")
	}
}

func TestLoadRejectsUnknownCategory(t *testing.T) {
	_, err := Load([]string{"praza", "-d", "-c", "Sucesos"})
	if err == nil {
		t.Fatal("Expected rejection of unknown category")
	}
}
