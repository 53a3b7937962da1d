package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/proxectonos/galnews/app/article"
	"github.com/proxectonos/galnews/app/cfg"
	"github.com/proxectonos/galnews/app/config"
	"github.com/proxectonos/galnews/app/corpus"
	"github.com/proxectonos/galnews/app/crawl"
	"github.com/proxectonos/galnews/app/database"
	"github.com/proxectonos/galnews/app/fetch"
	"github.com/proxectonos/galnews/app/store"
	"github.com/proxectonos/galnews/app/tasks"
)

func main() {
	appCfg, err := cfg.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	setupLogger(appCfg.LogLevel)
	slog.Debug("Starting galnews", "version", cfg.GetVersion(), "source", appCfg.Source, "mode", appCfg.Mode)

	sources, err := config.Load(appCfg.ConfigFile)
	if err != nil {
		slog.Error("Failed to load source configuration", "file", appCfg.ConfigFile, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	task, cleanup, err := buildTask(appCfg, sources)
	if err != nil {
		slog.Error("Failed to initialize", "error", err)
		os.Exit(1)
	}

	if err := task.Execute(ctx); err != nil {
		cleanup()
		slog.Error("Run failed", "task", task.GetType(), "error", err)
		os.Exit(1)
	}
	cleanup()

	result := task.GetResult()
	switch appCfg.Mode {
	case cfg.ModeDownload:
		fmt.Printf("Downloaded %d documents, %d skipped, %d with errors\n",
			result.OK, result.Skipped, result.Errors)
	case cfg.ModeParse:
		fmt.Printf("Parsed %d articles, %d with errors\n", result.OK, result.Errors)
	}
}

func setupLogger(level string) {
	logLevel := slog.LevelWarn
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "error":
		logLevel = slog.LevelError
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

// buildTask wires the components the selected source and mode need. Per-item
// failures are the task's business; an error here means the run cannot start
// at all.
func buildTask(appCfg *cfg.Cfg, sources *config.Sources) (tasks.TaskInterface, func(), error) {
	source := article.Source(appCfg.Source)
	documents := store.New(filepath.Join(appCfg.DataDir, appCfg.Source))
	noop := func() {}

	switch appCfg.Mode {
	case cfg.ModeDownload:
		catalog, closeCatalog, err := openCatalog(appCfg.DataDir)
		if err != nil {
			return nil, nil, err
		}

		fetcher := fetch.New(sources.Fetch, appCfg.UserAgent)
		requestDelay := time.Duration(sources.Fetch.RequestDelay * float64(time.Second))

		if appCfg.DownloadFrom == "rss" {
			crawler := crawl.NewFeedCrawler(fetcher, sources.Praza.FeedURL)
			return tasks.NewDownloadFeedTask(crawler, fetcher, documents, catalog, requestDelay),
				closeCatalog, nil
		}
		crawler := crawl.NewCategoryCrawler(fetcher, sources.Praza, requestDelay)
		return tasks.NewDownloadCategoryTask(appCfg.Categories, crawler, fetcher,
			documents, catalog, requestDelay), closeCatalog, nil

	case cfg.ModeParse:
		writer := corpus.NewWriter(filepath.Join(appCfg.CorpusDir, appCfg.Source))

		if source == article.SourceNosDiario {
			return tasks.NewParseNewsMLTask(appCfg.ParseTarget, documents,
				sources.NosDiario.BaseURL, writer), noop, nil
		}

		// The download catalog is optional at parse time: documents copied in
		// by hand are still parseable, just without the cataloged fallbacks.
		catalog, closeCatalog, err := openCatalog(appCfg.DataDir)
		if err != nil {
			slog.Warn("Download catalog unavailable, parsing without it", "error", err)
			catalog, closeCatalog = nil, noop
		}
		return tasks.NewParseHTMLTask(appCfg.ParseTarget, documents, catalog, writer),
			closeCatalog, nil
	}

	return nil, nil, fmt.Errorf("unsupported mode: %q", appCfg.Mode)
}

func openCatalog(dataDir string) (*database.DocumentRepository, func(), error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := database.NewConnection(filepath.Join(dataDir, "catalog.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open download catalog: %w", err)
	}

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate download catalog: %w", err)
	}
	slog.Debug("Download catalog ready", "version", version, "dirty", dirty)

	return database.NewDocumentRepository(db), func() { db.Close() }, nil
}
