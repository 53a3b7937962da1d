package tasks

import (
	"context"
	"log/slog"

	"github.com/proxectonos/galnews/app/article"
	"github.com/proxectonos/galnews/app/corpus"
	"github.com/proxectonos/galnews/app/database"
	"github.com/proxectonos/galnews/app/extract"
	"github.com/proxectonos/galnews/app/store"
)

// ParseHTMLTask turns stored Praza Pública HTML documents into corpus
// records. It reads only already-persisted documents; no network access
// happens in this phase. Each file fails independently.
type ParseHTMLTask struct {
	Task
	Target    string // single document key, empty for every stored document
	documents *store.Store
	catalog   *database.DocumentRepository
	extractor *extract.HTMLExtractor
	writer    *corpus.Writer
	result    Result
}

func NewParseHTMLTask(target string, documents *store.Store, catalog *database.DocumentRepository,
	writer *corpus.Writer) *ParseHTMLTask {
	return &ParseHTMLTask{
		Task:      NewTask(TaskTypeParseHTML, article.SourcePraza),
		Target:    target,
		documents: documents,
		catalog:   catalog,
		extractor: extract.NewHTMLExtractor(),
		writer:    writer,
	}
}

func (t *ParseHTMLTask) Execute(ctx context.Context) error {
	t.Start()

	keys, err := t.keys()
	if err != nil {
		return err
	}

	for _, key := range keys {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		slog.Info("Parsing document", "key", key)
		t.parseDocument(key)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"parsed", t.result.OK,
		"errors", t.result.Errors)

	return nil
}

func (t *ParseHTMLTask) GetResult() Result {
	return t.result
}

func (t *ParseHTMLTask) keys() ([]string, error) {
	if t.Target != "" {
		return []string{t.Target}, nil
	}
	return t.documents.List("*.html")
}

func (t *ParseHTMLTask) parseDocument(key string) {
	content, err := t.documents.Load(key)
	if err != nil {
		slog.Error("Error reading document", "key", key, "error", err)
		t.result.Errors++
		return
	}

	// The catalog remembers the URL and discovery category of each
	// download; both serve as fallbacks for pages that do not carry them.
	var knownURL, fallbackCategory string
	if t.catalog != nil {
		if doc, err := t.catalog.GetByKey(key); err == nil && doc != nil {
			knownURL = doc.URL
			fallbackCategory = doc.Category
		}
	}

	record, err := t.extractor.Extract(article.RawDocument{
		Key:         key,
		Content:     content,
		ContentType: article.ContentTypeHTML,
	}, knownURL, fallbackCategory)
	if err != nil {
		slog.Error("Error parsing article", "key", key, "error", err)
		t.result.Errors++
		return
	}

	if err := t.writer.Write(record, key); err != nil {
		slog.Error("Error writing record", "key", key, "error", err)
		t.result.Errors++
		return
	}

	t.result.OK++
}
