package tasks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/proxectonos/galnews/app/article"
	"github.com/proxectonos/galnews/app/crawl"
	"github.com/proxectonos/galnews/app/database"
	"github.com/proxectonos/galnews/app/store"
)

// CategoryCrawler is the discovery capability the download task drives.
type CategoryCrawler interface {
	Crawl(ctx context.Context, category string, visit func(article.Ref) error) error
}

// DownloadCategoryTask walks category listings and persists every discovered
// article page. Already-stored documents are skipped, a failed page crawl
// degrades that category to a partial crawl, and the remaining categories
// still run.
type DownloadCategoryTask struct {
	Task
	Categories []string
	crawler    CategoryCrawler
	fetcher    crawl.Fetcher
	documents  *store.Store
	catalog    *database.DocumentRepository
	delay      time.Duration
	result     Result
}

func NewDownloadCategoryTask(categories []string, crawler CategoryCrawler, fetcher crawl.Fetcher,
	documents *store.Store, catalog *database.DocumentRepository, delay time.Duration) *DownloadCategoryTask {
	if len(categories) == 0 {
		categories = article.PrazaCategories()
	}
	return &DownloadCategoryTask{
		Task:       NewTask(TaskTypeDownloadCategory, article.SourcePraza),
		Categories: categories,
		crawler:    crawler,
		fetcher:    fetcher,
		documents:  documents,
		catalog:    catalog,
		delay:      delay,
	}
}

func (t *DownloadCategoryTask) Execute(ctx context.Context) error {
	t.Start()

	for _, category := range t.Categories {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		slog.Info("Fetching category", "category", category)

		err := t.crawler.Crawl(ctx, category, func(ref article.Ref) error {
			return t.downloadArticle(ctx, ref)
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			slog.Warn("Partial category crawl", "category", category, "error", err)
		}
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"downloaded", t.result.OK,
		"skipped", t.result.Skipped,
		"errors", t.result.Errors)

	return nil
}

func (t *DownloadCategoryTask) GetResult() Result {
	return t.result
}

// downloadArticle fetches and persists one discovered article before the
// crawler requests the next listing page. Per-article failures are logged
// with the URL and never abort the crawl.
func (t *DownloadCategoryTask) downloadArticle(ctx context.Context, ref article.Ref) error {
	key := article.DocumentKey(ref.URL, ref.PublishedRaw)

	if t.documents.Exists(key) {
		slog.Debug("Document already stored, skipping download", "key", key, "url", ref.URL)
		t.result.Skipped++
		return nil
	}

	content, err := t.fetcher.Fetch(ctx, ref.URL)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		slog.Error("Error downloading article", "url", ref.URL, "error", err)
		t.result.Errors++
		return nil
	}
	if len(content) == 0 {
		slog.Warn("Empty content for article", "url", ref.URL)
		t.result.Errors++
		return nil
	}

	if err := t.documents.Save(key, content, false); err != nil {
		if errors.Is(err, store.ErrExists) {
			t.result.Skipped++
			return nil
		}
		slog.Error("Error storing article", "key", key, "url", ref.URL, "error", err)
		t.result.Errors++
		return nil
	}

	if t.catalog != nil {
		err := t.catalog.RecordDownload(database.Document{
			Key:         key,
			URL:         ref.URL,
			Source:      ref.Source,
			Category:    ref.Category,
			ContentType: article.ContentTypeHTML,
			Size:        int64(len(content)),
			FetchedAt:   time.Now(),
		})
		if err != nil {
			slog.Warn("Failed to catalog download", "key", key, "error", err)
		}
	}

	t.result.OK++
	slog.Info("Successfully downloaded article", "url", ref.URL, "key", key)

	// Fixed inter-request delay: keep load on the origin server predictable.
	if t.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(t.delay):
		}
	}

	return nil
}
