package crawl

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/proxectonos/galnews/app/article"
)

// FeedCrawler discovers articles through the source-wide RSS feed. The feed
// is a single bounded document; there is no pagination.
type FeedCrawler struct {
	fetcher      Fetcher
	feedURL      string
	gofeedParser *gofeed.Parser
}

func NewFeedCrawler(fetcher Fetcher, feedURL string) *FeedCrawler {
	return &FeedCrawler{
		fetcher:      fetcher,
		feedURL:      feedURL,
		gofeedParser: gofeed.NewParser(),
	}
}

// Crawl fetches the feed once and yields every item link in document order.
// A feed fetch or parse failure is fatal for the run: there is nothing else
// to fall back to on this discovery path.
func (c *FeedCrawler) Crawl(ctx context.Context, visit func(article.Ref) error) error {
	data, err := c.fetcher.Fetch(ctx, c.feedURL)
	if err != nil {
		return fmt.Errorf("failed to fetch feed %s: %w", c.feedURL, err)
	}

	feed, err := c.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse feed %s: %w", c.feedURL, err)
	}

	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}

		ref := article.Ref{
			Source:       article.SourcePraza,
			Category:     "rss",
			URL:          item.Link,
			DiscoveredAt: time.Now(),
		}
		if item.PublishedParsed != nil {
			ref.PublishedRaw = item.PublishedParsed.Format(time.RFC3339)
		}

		if err := visit(ref); err != nil {
			return err
		}
	}

	return nil
}
