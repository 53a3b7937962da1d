package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/proxectonos/galnews/app/article"
)

// Document is one catalog row describing a stored raw document.
type Document struct {
	Key         string
	URL         string
	Source      article.Source
	Category    string
	ContentType article.ContentType
	Size        int64
	FetchedAt   time.Time
}

// DocumentRepository handles catalog operations for downloaded documents.
type DocumentRepository struct {
	db *DB
}

func NewDocumentRepository(db *DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// RecordDownload inserts or refreshes the catalog row for a stored document.
func (r *DocumentRepository) RecordDownload(doc Document) error {
	_, err := r.db.Exec(`
		INSERT INTO documents (key, url, source, category, content_type, size, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			url = excluded.url,
			category = excluded.category,
			size = excluded.size,
			fetched_at = excluded.fetched_at
	`, doc.Key, doc.URL, string(doc.Source), doc.Category,
		string(doc.ContentType), doc.Size, doc.FetchedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record download: %w", err)
	}
	return nil
}

// Exists reports whether the catalog already knows the given key.
func (r *DocumentRepository) Exists(key string) (bool, error) {
	var one int
	err := r.db.QueryRow(`SELECT 1 FROM documents WHERE key = ?`, key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check document existence: %w", err)
	}
	return true, nil
}

// GetByKey returns the catalog row for a key, or nil when unknown.
func (r *DocumentRepository) GetByKey(key string) (*Document, error) {
	var doc Document
	var source, contentType string

	err := r.db.QueryRow(`
		SELECT key, url, source, category, content_type, size, fetched_at
		FROM documents WHERE key = ?
	`, key).Scan(&doc.Key, &doc.URL, &source, &doc.Category, &contentType,
		&doc.Size, &doc.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	doc.Source = article.Source(source)
	doc.ContentType = article.ContentType(contentType)
	return &doc, nil
}

// CountBySource returns how many documents the catalog holds per source.
func (r *DocumentRepository) CountBySource(source article.Source) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM documents WHERE source = ?`,
		string(source)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}
