package config

// Sources is the root of the source configuration file.
type Sources struct {
	Praza     PrazaSource     `yaml:"praza"`
	NosDiario NosDiarioSource `yaml:"nosdiario"`
	Fetch     FetchSettings   `yaml:"fetch"`
}

// PrazaSource configures the Praza Pública crawl endpoints.
type PrazaSource struct {
	BaseURL string `yaml:"base_url"`
	// ListingURL is a template with %s for the category slug and %d for the
	// page number.
	ListingURL string `yaml:"listing_url"`
	FeedURL    string `yaml:"feed_url"`
}

// NosDiarioSource configures the Nós Diario source. Its NewsML documents are
// delivered out-of-band, so only the base URL (for article URL
// reconstruction) is needed.
type NosDiarioSource struct {
	BaseURL string `yaml:"base_url"`
}

// FetchSettings configure the shared HTTP fetch policy.
type FetchSettings struct {
	Timeout      int     `yaml:"timeout"`       // seconds per request
	MaxRetries   int     `yaml:"max_retries"`   // attempts per URL
	RetryDelay   float64 `yaml:"retry_delay"`   // seconds between attempts
	RequestDelay float64 `yaml:"request_delay"` // seconds between distinct requests
}
