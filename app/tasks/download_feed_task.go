package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/proxectonos/galnews/app/article"
	"github.com/proxectonos/galnews/app/crawl"
	"github.com/proxectonos/galnews/app/database"
	"github.com/proxectonos/galnews/app/store"
)

// FeedCrawler is the feed discovery capability the download task drives.
type FeedCrawler interface {
	Crawl(ctx context.Context, visit func(article.Ref) error) error
}

// DownloadFeedTask persists every article the source-wide RSS feed links
// to. The feed is bounded and not paginated; an unreachable feed is fatal
// for the run.
type DownloadFeedTask struct {
	Task
	crawler   FeedCrawler
	fetcher   crawl.Fetcher
	documents *store.Store
	catalog   *database.DocumentRepository
	delay     time.Duration
	result    Result
}

func NewDownloadFeedTask(crawler FeedCrawler, fetcher crawl.Fetcher,
	documents *store.Store, catalog *database.DocumentRepository, delay time.Duration) *DownloadFeedTask {
	return &DownloadFeedTask{
		Task:      NewTask(TaskTypeDownloadFeed, article.SourcePraza),
		crawler:   crawler,
		fetcher:   fetcher,
		documents: documents,
		catalog:   catalog,
		delay:     delay,
	}
}

func (t *DownloadFeedTask) Execute(ctx context.Context) error {
	t.Start()

	// Reuse the per-article pipeline of the category task; only discovery
	// differs.
	articleTask := &DownloadCategoryTask{
		Task:      t.Task,
		fetcher:   t.fetcher,
		documents: t.documents,
		catalog:   t.catalog,
		delay:     t.delay,
	}

	err := t.crawler.Crawl(ctx, func(ref article.Ref) error {
		return articleTask.downloadArticle(ctx, ref)
	})
	t.result = articleTask.result
	if err != nil {
		return fmt.Errorf("feed crawl failed: %w", err)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"downloaded", t.result.OK,
		"skipped", t.result.Skipped,
		"errors", t.result.Errors)

	return nil
}

func (t *DownloadFeedTask) GetResult() Result {
	return t.result
}
