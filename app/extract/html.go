package extract

import (
	"log/slog"
	neturl "net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/proxectonos/galnews/app/article"
)

// noiseSelectors lists markup inside the body container that carries no
// article text: related-article widgets, media embeds, scripts.
const noiseSelectors = "script, style, aside, figure, nav, ul.at-archive-refs-list, div.related-content"

// HTMLExtractor turns one stored Praza Pública article page into a Record.
type HTMLExtractor struct{}

func NewHTMLExtractor() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract parses the raw HTML document. knownURL and fallbackCategory come
// from the crawl context: the URL is used when the page carries no og:url,
// the category when the page carries no category label of its own. Title and
// body are mandatory; a missing or unparsable date yields a nil PublishedAt.
func (e *HTMLExtractor) Extract(raw article.RawDocument, knownURL, fallbackCategory string) (*article.Record, error) {
	content := cleanChars(string(raw.Content))
	if content == "" {
		return nil, &MissingFieldError{Field: "body"}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, err
	}

	url := metaProperty(doc, "og:url")
	if url == "" {
		url = knownURL
	}
	if url == "" {
		return nil, &MissingFieldError{Field: "url"}
	}

	title := extractTitle(doc)
	if title == "" {
		return nil, &MissingFieldError{Field: "title"}
	}

	body, err := e.extractBody(doc, content, url)
	if err != nil {
		return nil, err
	}

	category, topics := extractCategories(doc)
	if category == "" {
		category = fallbackCategory
	}

	record := &article.Record{
		URL:         url,
		Title:       normalizeText(title),
		Abstract:    normalizeText(extractAbstract(doc)),
		BodyText:    normalizeText(body),
		Category:    category,
		Topics:      topics,
		Author:      extractAuthor(doc),
		PublishedAt: parseDate(metaProperty(doc, "article:published_time")),
		Source:      article.SourcePraza,
	}

	return record, nil
}

// extractBody requires the designated body container, then prefers
// readability's reader-view extraction over the full page (it strips ads and
// related-article widgets reliably); when readability comes back empty the
// container's own block text is used.
func (e *HTMLExtractor) extractBody(doc *goquery.Document, content, pageURL string) (string, error) {
	container := doc.Find("div.article-body").First()
	if container.Length() == 0 {
		return "", &MissingFieldError{Field: "body"}
	}

	body := readabilityText(content, pageURL)
	if body == "" {
		clone := container.Clone()
		clone.Find(noiseSelectors).Remove()
		body = blockText(clone)
	}

	if body == "" {
		return "", &MissingFieldError{Field: "body"}
	}
	return body, nil
}

func readabilityText(content, pageURL string) string {
	parsedURL, err := neturl.Parse(pageURL)
	if err != nil {
		parsedURL = nil
	}

	art, err := readability.FromReader(strings.NewReader(content), parsedURL)
	if err != nil {
		slog.Debug("Readability extraction failed", "url", pageURL, "error", err)
		return ""
	}
	if art.Content == "" {
		return ""
	}

	cleaned, err := goquery.NewDocumentFromReader(strings.NewReader(art.Content))
	if err != nil {
		return ""
	}
	return blockText(cleaned.Selection)
}

func extractTitle(doc *goquery.Document) string {
	title := metaProperty(doc, "og:title")
	if title == "" {
		title = metaName(doc, "title")
	}
	return strings.TrimSpace(strings.TrimSuffix(title, " - Praza Pública"))
}

func extractAbstract(doc *goquery.Document) string {
	abstract := metaProperty(doc, "og:description")
	if abstract == "" {
		abstract = metaName(doc, "description")
	}
	return collapseSpace(abstract)
}

// extractCategories reads the article's own tag list: the "area" link is the
// category label, "topic" links are free-form topics.
func extractCategories(doc *goquery.Document) (string, []string) {
	var category string
	var topics []string

	doc.Find("article#article ul a").Each(func(_ int, s *goquery.Selection) {
		switch s.AttrOr("class", "") {
		case "area":
			if category == "" {
				category = collapseSpace(s.Text())
			}
		case "topic":
			if topic := collapseSpace(s.Text()); topic != "" {
				topics = append(topics, topic)
			}
		}
	})

	return category, topics
}

func extractAuthor(doc *goquery.Document) string {
	if author := metaName(doc, "author"); author != "" {
		return collapseSpace(author)
	}
	return collapseSpace(doc.Find("p.byline a, a[rel='author']").First().Text())
}

func metaProperty(doc *goquery.Document, property string) string {
	content, _ := doc.Find("meta[property='" + property + "']").First().Attr("content")
	return strings.TrimSpace(content)
}

func metaName(doc *goquery.Document, name string) string {
	content, _ := doc.Find("meta[name='" + name + "']").First().Attr("content")
	return strings.TrimSpace(content)
}
