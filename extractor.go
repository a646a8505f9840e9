package rssfixer

// Extractor turns a page into feed entries using one strategy. An Extractor
// is built from a configuration and holds no state between calls, so Extract
// on the same input always yields the same entries.
type Extractor interface {
	// Mode names the strategy.
	Mode() Mode

	// Extract returns the entries found in html, in document order with
	// duplicates removed. It returns ENOLINKS when nothing qualifies.
	Extract(html string) ([]Entry, error)
}

// ExtractorRegistry selects the Extractor for a configuration.
type ExtractorRegistry interface {
	// Extractor validates cfg and returns a new strategy instance for its
	// mode. Configuration problems are reported before any extraction.
	Extractor(cfg ExtractConfig) (Extractor, error)
}

// DocumentFilter narrows a page to a subset of its elements.
type DocumentFilter interface {
	// Filter returns the HTML of every element matching tag and class.
	// It returns EHTML when nothing matches.
	Filter(html, tag, class string) (string, error)
}
