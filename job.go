package rssfixer

import "net/url"

// Job describes one feed to generate.
type Job struct {
	Name    string        `yaml:"name"`
	URL     string        `yaml:"url"`
	Title   string        `yaml:"title"`
	Extract ExtractConfig `yaml:"extract"`
	Filter  FilterConfig  `yaml:"filter"`
	Format  FeedFormat    `yaml:"format"`
	BaseURL string        `yaml:"base_url"`
	// Output is the destination file. Empty means standard output.
	Output string `yaml:"output"`
}

// DefaultFeedTitle is the channel title used when a job sets none.
const DefaultFeedTitle = "My RSS Feed"

// Validate returns an error if the job cannot be run.
func (j *Job) Validate() error {
	if j.URL == "" {
		return Errorf(EINVALID, "job url required")
	}
	u, err := url.Parse(j.URL)
	if err != nil || u.Host == "" {
		return Errorf(EINVALID, "invalid job url %q", j.URL)
	}
	switch j.Format {
	case "", FormatRSS, FormatAtom:
	default:
		return Errorf(ECONFIG, "unknown feed format %q", j.Format)
	}
	return j.Extract.Validate()
}

// Domain returns the host of the job URL.
func (j *Job) Domain() string {
	u, err := url.Parse(j.URL)
	if err != nil {
		return ""
	}
	return u.Host
}

// Feed returns the channel metadata for the job.
func (j *Job) Feed() Feed {
	title := j.Title
	if title == "" {
		title = DefaultFeedTitle
	}
	format := j.Format
	if format == "" {
		format = FormatRSS
	}
	return Feed{
		ID:          j.URL,
		Title:       title,
		Description: DefaultDescription(j.URL),
		BaseURL:     j.BaseURL,
		Format:      format,
	}
}
