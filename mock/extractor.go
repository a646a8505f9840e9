package mock

import "github.com/fwojciec/rssfixer"

var _ rssfixer.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of rssfixer.Extractor.
type Extractor struct {
	ModeFn    func() rssfixer.Mode
	ExtractFn func(html string) ([]rssfixer.Entry, error)
}

func (e *Extractor) Mode() rssfixer.Mode {
	return e.ModeFn()
}

func (e *Extractor) Extract(html string) ([]rssfixer.Entry, error) {
	return e.ExtractFn(html)
}

var _ rssfixer.ExtractorRegistry = (*ExtractorRegistry)(nil)

// ExtractorRegistry is a mock implementation of rssfixer.ExtractorRegistry.
type ExtractorRegistry struct {
	ExtractorFn func(cfg rssfixer.ExtractConfig) (rssfixer.Extractor, error)
}

func (r *ExtractorRegistry) Extractor(cfg rssfixer.ExtractConfig) (rssfixer.Extractor, error) {
	return r.ExtractorFn(cfg)
}

var _ rssfixer.DocumentFilter = (*DocumentFilter)(nil)

// DocumentFilter is a mock implementation of rssfixer.DocumentFilter.
type DocumentFilter struct {
	FilterFn func(html, tag, class string) (string, error)
}

func (f *DocumentFilter) Filter(html, tag, class string) (string, error) {
	return f.FilterFn(html, tag, class)
}
