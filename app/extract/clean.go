package extract

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"golang.org/x/text/unicode/norm"
)

// cleanChars replaces control characters with spaces and trims the result.
// Newswire exports occasionally carry stray control bytes that would end up
// in the corpus otherwise.
func cleanChars(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r < 0x20 || r == 0x7F:
			return ' '
		}
		return r
	}, s)
	return strings.TrimSpace(cleaned)
}

// normalizeText NFC-normalizes extracted text so that Galician accented
// characters have one canonical byte representation in the corpus.
func normalizeText(s string) string {
	return norm.NFC.String(s)
}

// collapseSpace flattens all whitespace runs into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// blockText extracts text nodes in reading order from sel, one line per
// block-level element. Elements nesting further blocks are skipped so their
// text is not emitted twice.
func blockText(sel *goquery.Selection) string {
	var blocks []string

	sel.Find("p, h1, h2, h3, h4, li, blockquote, figcaption").Each(func(_ int, s *goquery.Selection) {
		if s.Find("p, h1, h2, h3, h4, li").Length() > 0 {
			return
		}
		if text := collapseSpace(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})

	if len(blocks) == 0 {
		return collapseSpace(sel.Text())
	}
	return strings.Join(blocks, "\n")
}

// parseDate normalizes a published-date string, preferring RFC 3339 and
// falling back to lenient parsing. Returns nil when nothing parseable is
// left: a broken date never invalidates a record.
func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := dateparse.ParseAny(raw); err == nil {
		return &t
	}
	return nil
}
