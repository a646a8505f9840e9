package goquery

import (
	"slices"

	"github.com/fwojciec/rssfixer"
)

var _ rssfixer.ExtractorRegistry = (*Registry)(nil)

// ExtractorFactory builds a fresh strategy from a configuration.
type ExtractorFactory func(cfg rssfixer.ExtractConfig) (rssfixer.Extractor, error)

// Registry maps extraction modes to the factories that build their
// strategies. Every call to Extractor returns a new instance, so callers
// running jobs in parallel never share one.
type Registry struct {
	factories map[rssfixer.Mode]ExtractorFactory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[rssfixer.Mode]ExtractorFactory),
	}
}

// NewDefaultRegistry creates a Registry with the list, html, json and
// release strategies registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(rssfixer.ModeList, func(cfg rssfixer.ExtractConfig) (rssfixer.Extractor, error) {
		return NewListExtractor(cfg.List), nil
	})
	r.Register(rssfixer.ModeHTML, func(cfg rssfixer.ExtractConfig) (rssfixer.Extractor, error) {
		return NewHTMLExtractor(cfg.HTML)
	})
	r.Register(rssfixer.ModeJSON, func(cfg rssfixer.ExtractConfig) (rssfixer.Extractor, error) {
		return NewJSONExtractor(cfg.JSON)
	})
	r.Register(rssfixer.ModeRelease, func(cfg rssfixer.ExtractConfig) (rssfixer.Extractor, error) {
		return NewReleaseExtractor(cfg.Release)
	})
	return r
}

// Extractor validates cfg and builds the strategy for its mode.
// Returns ECONFIG for an invalid configuration or an unregistered mode.
func (r *Registry) Extractor(cfg rssfixer.ExtractConfig) (rssfixer.Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	factory, ok := r.factories[cfg.Mode]
	if !ok {
		return nil, rssfixer.Errorf(rssfixer.ECONFIG, "no extractor registered for mode %q", cfg.Mode)
	}
	return factory(cfg)
}

// Register adds a factory for a mode.
// If a factory is already registered for the mode, it is replaced.
func (r *Registry) Register(mode rssfixer.Mode, factory ExtractorFactory) {
	r.factories[mode] = factory
}

// Modes returns all registered modes in sorted order.
func (r *Registry) Modes() []rssfixer.Mode {
	modes := make([]rssfixer.Mode, 0, len(r.factories))
	for m := range r.factories {
		modes = append(modes, m)
	}
	slices.Sort(modes)
	return modes
}
