package article

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"
	"strings"
)

// DocumentKey derives the deterministic store key for a discovered article.
// With a parseable ISO date the key follows the year/month tree layout:
//
//	2023/05/praza_20230512_<url-slug>.html
//
// Without one it falls back to a content-addressed name derived from the
// URL, so the same link always maps to the same key.
func DocumentKey(url, isoDate string) string {
	slug := urlSlug(url)

	date := isoDate
	if i := strings.IndexAny(date, "T "); i >= 0 {
		date = date[:i]
	}

	parts := strings.Split(date, "-")
	if len(parts) == 3 && len(parts[0]) == 4 {
		year, month, day := parts[0], parts[1], parts[2]
		return path.Join(year, month,
			fmt.Sprintf("praza_%s%s%s_%s.html", year, month, day, slug))
	}

	return fmt.Sprintf("praza_%s_%s.html", URLHash(url)[:12], slug)
}

// URLHash returns the hex sha256 digest of a URL, used as the stable article
// identifier.
func URLHash(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

func urlSlug(url string) string {
	trimmed := strings.TrimRight(url, "/")
	slug := trimmed[strings.LastIndex(trimmed, "/")+1:]
	slug = strings.TrimSuffix(slug, ".html")
	if slug == "" {
		return "index"
	}
	return slug
}
