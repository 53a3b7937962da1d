package tasks

import (
	"context"
	"log/slog"

	"github.com/proxectonos/galnews/app/article"
	"github.com/proxectonos/galnews/app/corpus"
	"github.com/proxectonos/galnews/app/extract"
	"github.com/proxectonos/galnews/app/store"
)

// ParseNewsMLTask turns pre-downloaded Nós Diario NewsML documents into
// corpus records. A malformed or unreadable file is a per-file failure; the
// rest of the batch is unaffected.
type ParseNewsMLTask struct {
	Task
	Target    string
	documents *store.Store
	extractor *extract.NewsMLExtractor
	writer    *corpus.Writer
	result    Result
}

func NewParseNewsMLTask(target string, documents *store.Store, baseURL string,
	writer *corpus.Writer) *ParseNewsMLTask {
	return &ParseNewsMLTask{
		Task:      NewTask(TaskTypeParseNewsML, article.SourceNosDiario),
		Target:    target,
		documents: documents,
		extractor: extract.NewNewsMLExtractor(baseURL),
		writer:    writer,
	}
}

func (t *ParseNewsMLTask) Execute(ctx context.Context) error {
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

		slog.Info("Parsing file", "key", key)
		t.parseFile(key)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"parsed", t.result.OK,
		"skipped", t.result.Skipped,
		"errors", t.result.Errors)

	return nil
}

func (t *ParseNewsMLTask) GetResult() Result {
	return t.result
}

func (t *ParseNewsMLTask) keys() ([]string, error) {
	if t.Target != "" {
		return []string{t.Target}, nil
	}
	return t.documents.List("*.xml")
}

func (t *ParseNewsMLTask) parseFile(key string) {
	content, err := t.documents.Load(key)
	if err != nil {
		slog.Error("Error reading XML file", "key", key, "error", err)
		t.result.Errors++
		return
	}
	if len(content) == 0 {
		slog.Warn("Skipping empty file", "key", key)
		t.result.Skipped++
		return
	}

	record, err := t.extractor.Extract(article.RawDocument{
		Key:         key,
		Content:     content,
		ContentType: article.ContentTypeXML,
	})
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
