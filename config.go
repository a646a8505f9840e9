package rssfixer

import (
	"regexp"
	"strings"
)

// Mode names an extraction strategy.
type Mode string

// Extraction modes.
const (
	ModeList    Mode = "list"
	ModeHTML    Mode = "html"
	ModeJSON    Mode = "json"
	ModeRelease Mode = "release"
)

// Modes lists every supported mode in the order they are documented.
var Modes = []Mode{ModeList, ModeHTML, ModeJSON, ModeRelease}

// ParseMode returns the Mode named by s, ignoring case.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", Errorf(ECONFIG, "unknown extraction mode %q", s)
}

// ListConfig configures the List strategy. The strategy has no options;
// the type exists so every mode is built from its own sub-config.
type ListConfig struct{}

// HTMLConfig configures the Html strategy. Selector fields accept CSS
// selectors, so a bare tag name works as well as "div.entry". Class fields
// are regular expressions matched against an element's class attribute.
type HTMLConfig struct {
	Entries          string `yaml:"entries"`
	EntriesClass     string `yaml:"entries_class"`
	URL              string `yaml:"url"`
	Title            string `yaml:"title"`
	TitleClass       string `yaml:"title_class"`
	Description      string `yaml:"description"`
	DescriptionClass string `yaml:"description_class"`
	TitleFilter      string `yaml:"title_filter"`
}

// DefaultHTMLConfig returns the selectors used when none are given.
func DefaultHTMLConfig() HTMLConfig {
	return HTMLConfig{
		Entries:          "article",
		URL:              "a",
		Title:            "h3",
		TitleClass:       "title",
		Description:      "div",
		DescriptionClass: "summary",
	}
}

// JSONConfig names the keys the Json strategy reads.
type JSONConfig struct {
	Entries     string `yaml:"entries"`
	URL         string `yaml:"url"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// DefaultJSONConfig returns the keys used when none are given.
func DefaultJSONConfig() JSONConfig {
	return JSONConfig{
		Entries:     "entries",
		URL:         "url",
		Title:       "title",
		Description: "description",
	}
}

// ReleaseConfig configures the Release strategy. URL is the base every
// synthesized entry link starts with.
type ReleaseConfig struct {
	Entries string `yaml:"entries"`
	URL     string `yaml:"url"`
}

// ExtractConfig selects a strategy and carries the options of every
// strategy. Only the sub-config of the active mode is consulted.
type ExtractConfig struct {
	Mode    Mode          `yaml:"mode"`
	List    ListConfig    `yaml:"list"`
	HTML    HTMLConfig    `yaml:"html"`
	JSON    JSONConfig    `yaml:"json"`
	Release ReleaseConfig `yaml:"release"`
}

// DefaultExtractConfig returns a configuration for mode with default
// options for every strategy.
func DefaultExtractConfig(mode Mode) ExtractConfig {
	return ExtractConfig{
		Mode: mode,
		HTML: DefaultHTMLConfig(),
		JSON: DefaultJSONConfig(),
	}
}

// Validate returns ECONFIG when the active strategy cannot run with the
// configuration as given.
func (c *ExtractConfig) Validate() error {
	switch c.Mode {
	case ModeList:
		return nil
	case ModeHTML:
		return c.HTML.Validate()
	case ModeJSON:
		return c.JSON.Validate()
	case ModeRelease:
		return c.Release.Validate()
	case "":
		return Errorf(ECONFIG, "no valid blog type specified")
	default:
		return Errorf(ECONFIG, "unknown extraction mode %q", c.Mode)
	}
}

// Validate reports missing selectors and patterns that do not compile.
func (c HTMLConfig) Validate() error {
	if c.Entries == "" {
		return Errorf(ECONFIG, "html entries selector required")
	}
	if c.URL == "" {
		return Errorf(ECONFIG, "html url selector required")
	}
	if c.Title == "" {
		return Errorf(ECONFIG, "html title selector required")
	}
	patterns := []struct{ name, value string }{
		{"title class", c.TitleClass},
		{"description class", c.DescriptionClass},
		{"title filter", c.TitleFilter},
	}
	for _, p := range patterns {
		if _, err := regexp.Compile(p.value); err != nil {
			return Errorf(ECONFIG, "invalid %s pattern %q: %v", p.name, p.value, err)
		}
	}
	return nil
}

// Validate reports missing keys.
func (c JSONConfig) Validate() error {
	if c.Entries == "" {
		return Errorf(ECONFIG, "json entries key required")
	}
	if c.URL == "" {
		return Errorf(ECONFIG, "json url key required")
	}
	if c.Title == "" {
		return Errorf(ECONFIG, "json title key required")
	}
	return nil
}

// Validate reports a missing base URL or entries selector.
func (c ReleaseConfig) Validate() error {
	if c.URL == "" {
		return Errorf(ECONFIG, "release URL not specified")
	}
	if c.Entries == "" {
		return Errorf(ECONFIG, "release entries selector not specified")
	}
	return nil
}

// FilterConfig narrows a page to the elements matching Tag and Class
// before extraction. The filter applies only when both are set.
type FilterConfig struct {
	Tag   string `yaml:"tag"`
	Class string `yaml:"class"`
}

// Enabled reports whether the filter should run.
func (c FilterConfig) Enabled() bool {
	return c.Tag != "" && c.Class != ""
}
