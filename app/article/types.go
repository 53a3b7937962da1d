package article

import (
	"time"
)

// Source identifies the outlet a document or record originates from.
type Source string

const (
	SourcePraza     Source = "praza"
	SourceNosDiario Source = "nosdiario"
)

// ContentType identifies the raw format of a stored document.
type ContentType string

const (
	ContentTypeHTML ContentType = "html"
	ContentTypeXML  ContentType = "xml"
)

// Ref is a discovered article link. Produced by the crawlers, consumed by
// the download tasks. Category holds the listing category the link was found
// under, or "rss" for feed-discovered links.
type Ref struct {
	Source       Source
	Category     string
	URL          string
	PublishedRaw string // datetime attribute from the listing entry, if any
	DiscoveredAt time.Time
}

// RawDocument is one persisted fetch result. Immutable once written; the
// store overwrites only with an explicit flag.
type RawDocument struct {
	Key         string
	Content     []byte
	ContentType ContentType
	FetchedAt   time.Time
}

// Record is the normalized corpus unit for one article, independent of the
// source that produced it. Title and BodyText are mandatory; everything else
// tolerates absence.
type Record struct {
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Abstract    string     `json:"abstract,omitempty"`
	BodyText    string     `json:"body_text"`
	Category    string     `json:"category,omitempty"`
	Topics      []string   `json:"topics,omitempty"`
	Author      string     `json:"author,omitempty"`
	PublishedAt *time.Time `json:"published_at"`
	Source      Source     `json:"source"`
}
