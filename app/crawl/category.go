package crawl

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/proxectonos/galnews/app/article"
	"github.com/proxectonos/galnews/app/config"
)

// Fetcher is the retrieval capability the crawlers depend on.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// listingEntry is one article link found on a category listing page.
type listingEntry struct {
	href     string
	datetime string
}

// CategoryCrawler walks the paginated listing of a Praza Pública category
// and yields every discovered article link exactly once per crawl run.
// Pages are visited strictly in increasing order, one fetch in flight at a
// time, with a fixed delay between page requests.
type CategoryCrawler struct {
	fetcher Fetcher
	source  config.PrazaSource
	delay   time.Duration
}

func NewCategoryCrawler(fetcher Fetcher, source config.PrazaSource, delay time.Duration) *CategoryCrawler {
	return &CategoryCrawler{
		fetcher: fetcher,
		source:  source,
		delay:   delay,
	}
}

// Crawl visits category page by page, calling visit for every link not yet
// seen in this run, before the next page is requested. It terminates once a
// page contributes no new links (end of available history). A page fetch
// failure terminates this category's crawl early; the error reports how far
// the crawl got so the caller can warn about a partial crawl.
func (c *CategoryCrawler) Crawl(ctx context.Context, category string, visit func(article.Ref) error) error {
	slug, ok := article.PrazaCategorySlug(category)
	if !ok {
		return fmt.Errorf("invalid category: %q", category)
	}

	seen := make(map[string]bool)

	for page := 1; ; page++ {
		if page > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.delay):
			}
		}

		pageURL := fmt.Sprintf(c.source.ListingURL, slug, page)
		data, err := c.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			return fmt.Errorf("category %q page %d: %w", category, page, err)
		}

		entries, err := extractListingEntries(data)
		if err != nil {
			return fmt.Errorf("category %q page %d: %w", category, page, err)
		}

		if crawlDone(entries, seen) {
			slog.Debug("Reached end of category history",
				"category", category, "page", page, "articles", len(seen))
			return nil
		}

		for _, entry := range entries {
			if seen[entry.href] {
				continue
			}
			seen[entry.href] = true

			ref := article.Ref{
				Source:       article.SourcePraza,
				Category:     category,
				URL:          c.source.BaseURL + entry.href,
				PublishedRaw: entry.datetime,
				DiscoveredAt: time.Now(),
			}
			if err := visit(ref); err != nil {
				return err
			}
		}

		slog.Info("Finished listing page", "category", category, "page", page)
	}
}

// crawlDone is the pagination termination predicate: a page marks the end of
// available history when it yields no links at all, or when every link it
// yields was already seen earlier in this crawl.
func crawlDone(entries []listingEntry, seen map[string]bool) bool {
	for _, entry := range entries {
		if !seen[entry.href] {
			return false
		}
	}
	return true
}

func extractListingEntries(data []byte) ([]listingEntry, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}

	var entries []listingEntry
	doc.Find("ul.articles-list article").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Find("h2.headline a").First().Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}

		datetime, _ := s.Find("time.date").First().Attr("datetime")
		entries = append(entries, listingEntry{
			href:     strings.TrimSpace(href),
			datetime: strings.TrimSpace(datetime),
		})
	})

	return entries, nil
}
