package yaml_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/rssfixer"
	"github.com/fwojciec/rssfixer/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobFile = `
user_agent: test-agent/1.0
timeout: 20s
jobs:
  - name: blog
    url: https://example.com/blog
    title: Example Blog
    output: feeds/blog.xml
    format: atom
    base_url: https://example.com
    filter:
      tag: div
      class: content
    extract:
      mode: HTML
      html:
        entries: div.post
        title: h2
        title_class: ""
  - url: https://example.com/app
    output: /srv/feeds/app.xml
    extract:
      mode: json
      json:
        entries: items
`

func TestParseJobs(t *testing.T) {
	t.Parallel()

	t.Run("parses jobs with defaults", func(t *testing.T) {
		t.Parallel()

		f, err := yaml.ParseJobs([]byte(jobFile), "/etc/rssfixer")

		require.NoError(t, err)
		assert.Equal(t, "test-agent/1.0", f.UserAgent)
		assert.Equal(t, 20*time.Second, f.Timeout)
		require.Len(t, f.Jobs, 2)

		blog := f.Jobs[0]
		assert.Equal(t, "blog", blog.Name)
		assert.Equal(t, "Example Blog", blog.Title)
		assert.Equal(t, rssfixer.FormatAtom, blog.Format)
		assert.Equal(t, "https://example.com", blog.BaseURL)
		assert.Equal(t, filepath.Join("/etc/rssfixer", "feeds/blog.xml"), blog.Output)
		assert.Equal(t, rssfixer.FilterConfig{Tag: "div", Class: "content"}, blog.Filter)
		assert.Equal(t, rssfixer.ModeHTML, blog.Extract.Mode)
		assert.Equal(t, "div.post", blog.Extract.HTML.Entries)
		assert.Equal(t, "h2", blog.Extract.HTML.Title)
		assert.Empty(t, blog.Extract.HTML.TitleClass, "explicit empty value overrides the default")
		assert.Equal(t, "a", blog.Extract.HTML.URL, "unset selector keeps the default")
		assert.Equal(t, "summary", blog.Extract.HTML.DescriptionClass)

		app := f.Jobs[1]
		assert.Equal(t, "https://example.com/app", app.Name, "name defaults to url")
		assert.Equal(t, "/srv/feeds/app.xml", app.Output)
		assert.Equal(t, rssfixer.ModeJSON, app.Extract.Mode)
		assert.Equal(t, "items", app.Extract.JSON.Entries)
		assert.Equal(t, "url", app.Extract.JSON.URL)
	})

	t.Run("rejects empty file", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ParseJobs([]byte(""), ".")

		require.Error(t, err)
		assert.Equal(t, rssfixer.ECONFIG, rssfixer.ErrorCode(err))
	})

	t.Run("rejects file without jobs", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ParseJobs([]byte("user_agent: x\n"), ".")

		require.Error(t, err)
		assert.Equal(t, "job file lists no jobs", rssfixer.ErrorMessage(err))
	})

	t.Run("rejects unknown top-level keys", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ParseJobs([]byte("feeds: []\n"), ".")

		require.Error(t, err)
		assert.Equal(t, rssfixer.ECONFIG, rssfixer.ErrorCode(err))
	})

	t.Run("rejects misspelled keys inside a job", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			data string
			key  string
		}{
			{
				name: "job field",
				data: "jobs:\n  - url: https://example.com\n    output: a.xml\n    extrct:\n      mode: list\n",
				key:  "extrct",
			},
			{
				name: "html selector",
				data: "jobs:\n  - url: https://example.com\n    output: a.xml\n    extract:\n      mode: html\n      html:\n        entris: div.post\n",
				key:  "entris",
			},
			{
				name: "filter field",
				data: "jobs:\n  - url: https://example.com\n    output: a.xml\n    filter:\n      tg: div\n",
				key:  "tg",
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				_, err := yaml.ParseJobs([]byte(tt.data), ".")

				require.Error(t, err)
				assert.Equal(t, rssfixer.ECONFIG, rssfixer.ErrorCode(err))
				assert.Contains(t, rssfixer.ErrorMessage(err), "line 2: unable to parse job")
				assert.Contains(t, rssfixer.ErrorMessage(err), tt.key)
			})
		}
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		t.Parallel()

		data := "jobs:\n  - url: https://example.com\n    output: a.xml\n    extract:\n      mode: magic\n"

		_, err := yaml.ParseJobs([]byte(data), ".")

		require.Error(t, err)
		assert.Contains(t, rssfixer.ErrorMessage(err), `unknown extraction mode "magic"`)
	})

	t.Run("rejects invalid job configuration", func(t *testing.T) {
		t.Parallel()

		data := "jobs:\n  - name: rel\n    url: https://example.com\n    output: a.xml\n    extract:\n      mode: release\n      release:\n        entries: h2\n"

		_, err := yaml.ParseJobs([]byte(data), ".")

		require.Error(t, err)
		assert.Equal(t, rssfixer.ECONFIG, rssfixer.ErrorCode(err))
		assert.Equal(t, `job "rel": release URL not specified`, rssfixer.ErrorMessage(err))
	})

	t.Run("requires output", func(t *testing.T) {
		t.Parallel()

		data := "jobs:\n  - name: a\n    url: https://example.com\n    extract:\n      mode: list\n"

		_, err := yaml.ParseJobs([]byte(data), ".")

		require.Error(t, err)
		assert.Equal(t, `job "a": output required`, rssfixer.ErrorMessage(err))
	})

	t.Run("rejects two jobs writing the same file", func(t *testing.T) {
		t.Parallel()

		data := `jobs:
  - name: a
    url: https://example.com/a
    output: feed.xml
    extract: {mode: list}
  - name: b
    url: https://example.com/b
    output: feed.xml
    extract: {mode: list}
`

		_, err := yaml.ParseJobs([]byte(data), "out")

		require.Error(t, err)
		assert.Contains(t, rssfixer.ErrorMessage(err), `jobs "a" and "b" both write`)
	})
}

func TestLoadJobs(t *testing.T) {
	t.Parallel()

	t.Run("resolves outputs next to the job file", func(t *testing.T) {
		t.Parallel()

		// Given: a job file in a temp directory
		dir := t.TempDir()
		path := filepath.Join(dir, "jobs.yaml")
		data := "jobs:\n  - url: https://example.com\n    output: feed.xml\n    extract:\n      mode: list\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		// When: loading it
		f, err := yaml.LoadJobs(path)

		// Then: the output sits beside the job file
		require.NoError(t, err)
		require.Len(t, f.Jobs, 1)
		assert.Equal(t, filepath.Join(dir, "feed.xml"), f.Jobs[0].Output)
	})

	t.Run("reports missing file", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadJobs(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
		assert.Equal(t, rssfixer.ECONFIG, rssfixer.ErrorCode(err))
	})
}
