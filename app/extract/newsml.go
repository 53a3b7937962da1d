package extract

import (
	"encoding/xml"
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/proxectonos/galnews/app/article"
)

// NewsMLExtractor turns one pre-downloaded Nós Diario NewsML document into a
// Record. Documents arrive as local files; no network access happens here.
type NewsMLExtractor struct {
	baseURL string
}

func NewNewsMLExtractor(baseURL string) *NewsMLExtractor {
	return &NewsMLExtractor{baseURL: baseURL}
}

type newsMLDoc struct {
	XMLName  xml.Name `xml:"NewsML"`
	NewsItem struct {
		Identification struct {
			NewsIdentifier struct {
				NewsItemID string `xml:"NewsItemId"`
				DateID     string `xml:"DateId"`
			} `xml:"NewsIdentifier"`
		} `xml:"Identification"`
		NewsManagement struct {
			FirstCreated        string `xml:"FirstCreated"`
			FirstPublished      string `xml:"FirstPublished"`
			ThisRevisionCreated string `xml:"ThisRevisionCreated"`
		} `xml:"NewsManagement"`
		Component *newsComponent `xml:"NewsComponent"`
	} `xml:"NewsItem"`
}

type newsComponent struct {
	Duid      string `xml:"Duid,attr"`
	NewsLines struct {
		HeadLine    string `xml:"HeadLine"`
		SubHeadLine string `xml:"SubHeadLine"`
	} `xml:"NewsLines"`
	Properties   []newsProperty    `xml:"DescriptiveMetadata>Property"`
	ContentItems []newsContentItem `xml:"ContentItem"`
	Components   []newsComponent   `xml:"NewsComponent"`
}

type newsProperty struct {
	FormalName string `xml:"FormalName,attr"`
	Value      string `xml:"Value,attr"`
}

type newsContentItem struct {
	Type        string `xml:"type,attr"`
	Href        string `xml:"Href,attr"`
	DataContent struct {
		Nitf struct {
			Body struct {
				Head struct {
					Abstract struct {
						Inner string `xml:",innerxml"`
					} `xml:"abstract"`
				} `xml:"body.head"`
				Content struct {
					Inner string `xml:",innerxml"`
				} `xml:"body.content"`
			} `xml:"body"`
		} `xml:"nitf"`
	} `xml:"DataContent"`
}

// Extract decodes the NewsML document. Headline and body text are mandatory;
// the category comes from the Tesauro subject codes through the static
// lookup, unknown codes mapping to an empty category.
func (e *NewsMLExtractor) Extract(raw article.RawDocument) (*article.Record, error) {
	if len(raw.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedXML)
	}

	var doc newsMLDoc
	if err := xml.Unmarshal(raw.Content, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}

	root := doc.NewsItem.Component
	if root == nil {
		return nil, fmt.Errorf("%w: no news component", ErrMalformedXML)
	}

	title := firstHeadline(root)
	if title == "" {
		return nil, &MissingFieldError{Field: "title"}
	}

	item := articleContentItem(root)
	if item == nil {
		return nil, &MissingFieldError{Field: "body"}
	}

	body := htmlFragmentText(item.DataContent.Nitf.Body.Content.Inner)
	if body == "" {
		return nil, &MissingFieldError{Field: "body"}
	}

	codes := tesauroCodes(root)

	record := &article.Record{
		URL:         e.articleURL(&doc, codes),
		Title:       normalizeText(cleanChars(title)),
		Abstract:    normalizeText(htmlFragmentText(item.DataContent.Nitf.Body.Head.Abstract.Inner)),
		BodyText:    normalizeText(body),
		Category:    firstTesauroLabel(codes),
		PublishedAt: parseDate(doc.NewsItem.NewsManagement.FirstPublished),
		Source:      article.SourceNosDiario,
	}

	return record, nil
}

// articleURL reconstructs the public article URL from the news identifier,
// following the outlet's /articulo/<category>/-/<dateid><uid>.html scheme.
// Missing identifier parts leave the URL empty rather than failing.
func (e *NewsMLExtractor) articleURL(doc *newsMLDoc, codes []string) string {
	uid := doc.NewsItem.Identification.NewsIdentifier.NewsItemID
	dateID := doc.NewsItem.Identification.NewsIdentifier.DateID
	if uid == "" || dateID == "" || len(codes) == 0 {
		return ""
	}

	if i := strings.Index(dateID, "+"); i >= 0 {
		dateID = dateID[:i]
	}
	dateID = strings.ReplaceAll(dateID, "T", "")

	return fmt.Sprintf("%s/articulo/%s/-/%s%s.html", e.baseURL, codes[0], dateID, uid)
}

func firstHeadline(c *newsComponent) string {
	if headline := strings.TrimSpace(c.NewsLines.HeadLine); headline != "" {
		return headline
	}
	for i := range c.Components {
		if headline := firstHeadline(&c.Components[i]); headline != "" {
			return headline
		}
	}
	return ""
}

// articleContentItem finds the main text content item, preferring the one
// explicitly typed "article" and falling back to the first one carrying body
// content.
func articleContentItem(c *newsComponent) *newsContentItem {
	var fallback *newsContentItem

	var walk func(c *newsComponent) *newsContentItem
	walk = func(c *newsComponent) *newsContentItem {
		for i := range c.ContentItems {
			item := &c.ContentItems[i]
			if item.DataContent.Nitf.Body.Content.Inner == "" {
				continue
			}
			if item.Type == "article" {
				return item
			}
			if fallback == nil {
				fallback = item
			}
		}
		for i := range c.Components {
			if item := walk(&c.Components[i]); item != nil {
				return item
			}
		}
		return nil
	}

	if item := walk(c); item != nil {
		return item
	}
	return fallback
}

// tesauroCodes collects the Tesauro subject codes in document order without
// duplicates.
func tesauroCodes(c *newsComponent) []string {
	var codes []string
	seen := make(map[string]bool)

	var walk func(c *newsComponent)
	walk = func(c *newsComponent) {
		for _, p := range c.Properties {
			if p.FormalName != "Tesauro" || p.Value == "" || seen[p.Value] {
				continue
			}
			seen[p.Value] = true
			codes = append(codes, p.Value)
		}
		for i := range c.Components {
			walk(&c.Components[i])
		}
	}
	walk(c)

	return codes
}

func firstTesauroLabel(codes []string) string {
	for _, code := range codes {
		if label := article.TesauroLabel(code); label != "" {
			return label
		}
	}
	return ""
}

// htmlFragmentText turns an (possibly entity-escaped) HTML fragment from a
// NewsML text block into newline-joined plain text. Related-content widgets
// embedded in the body are dropped.
func htmlFragmentText(inner string) string {
	fragment := cleanChars(html.UnescapeString(inner))
	if fragment == "" {
		return ""
	}

	fragment = strings.ReplaceAll(fragment, "<strong>", "")
	fragment = strings.ReplaceAll(fragment, "</strong>", "")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body>" + fragment + "</body></html>"))
	if err != nil {
		return ""
	}
	doc.Find("div.related-content").Remove()

	return blockText(doc.Selection)
}
