package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/proxectonos/galnews/app/article"
)

func testRepo(t *testing.T) *DocumentRepository {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return NewDocumentRepository(db)
}

func TestRecordDownloadAndGet(t *testing.T) {
	repo := testRepo(t)

	doc := Document{
		Key:         "2023/05/praza_20230512_nova.html",
		URL:         "https://praza.gal/politica/nova",
		Source:      article.SourcePraza,
		Category:    "Política",
		ContentType: article.ContentTypeHTML,
		Size:        1024,
		FetchedAt:   time.Now(),
	}
	if err := repo.RecordDownload(doc); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	got, err := repo.GetByKey(doc.Key)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got == nil {
		t.Fatal("Expected document, got nil")
	}
	if got.URL != doc.URL || got.Category != "Política" || got.Source != article.SourcePraza {
		t.Errorf("Unexpected document: %+v", got)
	}
}

func TestExists(t *testing.T) {
	repo := testRepo(t)

	ok, err := repo.Exists("missing.html")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if ok {
		t.Error("Expected missing key to not exist")
	}

	doc := Document{
		Key: "a.html", URL: "https://example.com/a",
		Source: article.SourcePraza, ContentType: article.ContentTypeHTML,
		FetchedAt: time.Now(),
	}
	if err := repo.RecordDownload(doc); err != nil {
		t.Fatal(err)
	}

	ok, err = repo.Exists("a.html")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("Expected recorded key to exist")
	}
}

func TestRecordDownloadUpsert(t *testing.T) {
	repo := testRepo(t)

	doc := Document{
		Key: "a.html", URL: "https://example.com/a",
		Source: article.SourcePraza, ContentType: article.ContentTypeHTML,
		Size: 10, FetchedAt: time.Now(),
	}
	if err := repo.RecordDownload(doc); err != nil {
		t.Fatal(err)
	}

	doc.Size = 20
	if err := repo.RecordDownload(doc); err != nil {
		t.Fatalf("Expected re-record to succeed, got: %v", err)
	}

	got, err := repo.GetByKey("a.html")
	if err != nil {
		t.Fatal(err)
	}
	if got.Size != 20 {
		t.Errorf("Expected refreshed size 20, got: %d", got.Size)
	}

	count, err := repo.CountBySource(article.SourcePraza)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected a single row after upsert, got: %d", count)
	}
}
