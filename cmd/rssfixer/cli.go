package main

import (
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/rssfixer"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL string `arg:"" help:"URL of the page to turn into a feed."`

	List    bool `group:"Mode" help:"Find entries in <ul> lists without a class."`
	HTML    bool `group:"Mode" name:"html" help:"Find entries in repeated HTML elements."`
	JSON    bool `group:"Mode" name:"json" help:"Find entries in JSON embedded in the page."`
	Release bool `group:"Mode" help:"Find releases in HTML headings."`

	Atom       bool   `help:"Generate an Atom feed instead of RSS."`
	BaseURL    string `name:"base-url" help:"Prefix for entry links that do not start with http."`
	Output     string `short:"o" default:"rss_feed.xml" help:"Name of the output file."`
	Title      string `default:"My RSS Feed" help:"Title of the feed."`
	UserAgent  string `name:"user-agent" env:"RSSFIXER_USER_AGENT" help:"User agent sent with the request."`
	FilterType string `name:"filter-type" help:"Keep only elements of this tag before extraction (with --filter-name)."`
	FilterName string `name:"filter-name" help:"Keep only elements with this class before extraction (with --filter-type)."`

	ReleaseURL     option `name:"release-url" group:"Release" help:"Base URL for release links."`
	ReleaseEntries option `name:"release-entries" group:"Release" help:"Selector for release entries."`

	HTMLEntries          option `name:"html-entries" group:"HTML" help:"Selector for entries (default: article)."`
	HTMLEntriesClass     option `name:"html-entries-class" group:"HTML" help:"Class name for entries."`
	HTMLURL              option `name:"html-url" group:"HTML" help:"Selector for the link (default: a)."`
	HTMLTitle            option `name:"html-title" group:"HTML" help:"Selector for the title (default: h3)."`
	HTMLTitleClass       option `name:"html-title-class" group:"HTML" help:"Title class pattern (default: title)."`
	HTMLDescription      option `name:"html-description" group:"HTML" help:"Selector for the description (default: div)."`
	HTMLDescriptionClass option `name:"html-description-class" group:"HTML" help:"Description class pattern (default: summary)."`
	TitleFilter          string `name:"title-filter" group:"HTML" help:"Skip entries whose title does not match this pattern."`

	JSONEntries     option `name:"json-entries" group:"JSON" help:"Key holding the list of entries (default: entries)."`
	JSONURL         option `name:"json-url" group:"JSON" help:"Key for the link (default: url)."`
	JSONTitle       option `name:"json-title" group:"JSON" help:"Key for the title (default: title)."`
	JSONDescription option `name:"json-description" group:"JSON" help:"Key for the description (default: description)."`

	Quiet   bool             `short:"q" help:"Suppress output."`
	Debug   bool             `short:"d" help:"Print the filtered HTML and debug logs."`
	Stdout  bool             `help:"Print the feed to stdout instead of writing a file."`
	Version kong.VersionFlag `help:"Print the version and exit."`
	Render  bool             `help:"Render the page in headless Chrome before extraction."`
	History string           `type:"path" help:"SQLite database remembering when entries first appeared."`
	Timeout time.Duration    `short:"t" default:"10s" help:"Fetch timeout."`
}

// option is a string flag that remembers whether it was given, so a flag
// set to the empty string can be told apart from an absent one.
type option struct {
	value string
	set   bool
}

// Decode implements kong.MapperValue.
func (o *option) Decode(ctx *kong.DecodeContext) error {
	if err := ctx.Scan.PopValueInto("value", &o.value); err != nil {
		return err
	}
	o.set = true
	return nil
}

func (o option) or(def string) string {
	if o.set {
		return o.value
	}
	return def
}

// Mode returns the single extraction mode selected on the command line.
func (c *CLI) Mode() (rssfixer.Mode, error) {
	var modes []rssfixer.Mode
	for _, m := range []struct {
		on   bool
		mode rssfixer.Mode
	}{
		{c.List, rssfixer.ModeList},
		{c.HTML, rssfixer.ModeHTML},
		{c.JSON, rssfixer.ModeJSON},
		{c.Release, rssfixer.ModeRelease},
	} {
		if m.on {
			modes = append(modes, m.mode)
		}
	}
	switch len(modes) {
	case 0:
		return "", rssfixer.Errorf(rssfixer.ECONFIG, "no valid blog type specified")
	case 1:
		return modes[0], nil
	default:
		return "", rssfixer.Errorf(rssfixer.ECONFIG, "only one of --list, --html, --json and --release may be given")
	}
}

type namedOption struct {
	name string
	option
}

// checkModeOptions rejects strategy options given without their strategy.
func (c *CLI) checkModeOptions() error {
	groups := []struct {
		on   bool
		mode string
		opts []namedOption
	}{
		{c.HTML, "html", []namedOption{
			{"html-entries", c.HTMLEntries},
			{"html-entries-class", c.HTMLEntriesClass},
			{"html-url", c.HTMLURL},
			{"html-title", c.HTMLTitle},
			{"html-title-class", c.HTMLTitleClass},
			{"html-description", c.HTMLDescription},
			{"html-description-class", c.HTMLDescriptionClass},
		}},
		{c.JSON, "json", []namedOption{
			{"json-entries", c.JSONEntries},
			{"json-url", c.JSONURL},
			{"json-title", c.JSONTitle},
			{"json-description", c.JSONDescription},
		}},
		{c.Release, "release", []namedOption{
			{"release-url", c.ReleaseURL},
			{"release-entries", c.ReleaseEntries},
		}},
	}
	for _, g := range groups {
		if g.on {
			continue
		}
		for _, opt := range g.opts {
			if opt.set {
				return rssfixer.Errorf(rssfixer.ECONFIG, "--%s requires --%s to be specified", opt.name, g.mode)
			}
		}
	}
	return nil
}

// Job converts the parsed flags into a feed job.
func (c *CLI) Job() (*rssfixer.Job, error) {
	mode, err := c.Mode()
	if err != nil {
		return nil, err
	}
	if err := c.checkModeOptions(); err != nil {
		return nil, err
	}

	html := rssfixer.DefaultHTMLConfig()
	json := rssfixer.DefaultJSONConfig()
	job := &rssfixer.Job{
		Name:    c.URL,
		URL:     c.URL,
		Title:   c.Title,
		BaseURL: c.BaseURL,
		Format:  rssfixer.FormatRSS,
		Output:  c.Output,
		Filter:  rssfixer.FilterConfig{Tag: c.FilterType, Class: c.FilterName},
		Extract: rssfixer.ExtractConfig{
			Mode: mode,
			HTML: rssfixer.HTMLConfig{
				Entries:          c.HTMLEntries.or(html.Entries),
				EntriesClass:     c.HTMLEntriesClass.or(html.EntriesClass),
				URL:              c.HTMLURL.or(html.URL),
				Title:            c.HTMLTitle.or(html.Title),
				TitleClass:       c.HTMLTitleClass.or(html.TitleClass),
				Description:      c.HTMLDescription.or(html.Description),
				DescriptionClass: c.HTMLDescriptionClass.or(html.DescriptionClass),
				TitleFilter:      c.TitleFilter,
			},
			JSON: rssfixer.JSONConfig{
				Entries:     c.JSONEntries.or(json.Entries),
				URL:         c.JSONURL.or(json.URL),
				Title:       c.JSONTitle.or(json.Title),
				Description: c.JSONDescription.or(json.Description),
			},
			Release: rssfixer.ReleaseConfig{
				Entries: c.ReleaseEntries.value,
				URL:     c.ReleaseURL.value,
			},
		},
	}
	if c.Atom {
		job.Format = rssfixer.FormatAtom
	}
	if c.Stdout {
		job.Output = ""
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}

// describe returns the success line printed after a feed is written.
func describe(job *rssfixer.Job) string {
	return fmt.Sprintf("%s feed created: %s", job.Feed().Format, job.Output)
}
