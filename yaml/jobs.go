// Package yaml loads batch job files. A job file lists feeds to generate:
//
//	user_agent: "Mozilla/5.0 ..."
//	timeout: 20s
//	jobs:
//	  - name: blog
//	    url: https://example.com/blog
//	    output: feeds/blog.xml
//	    format: atom
//	    extract:
//	      mode: html
//	      html:
//	        entries: div.post
//	        title: h2
//	        title_class: ""
//
// Extraction options a job leaves out take the same defaults as the
// command-line tool. Relative output paths are resolved against the
// directory holding the job file.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/rssfixer"
	yamlv3 "gopkg.in/yaml.v3"
)

// File is a parsed job file.
type File struct {
	// UserAgent overrides the fetcher's user agent for every job.
	UserAgent string
	// Timeout overrides the per-page fetch timeout.
	Timeout time.Duration
	Jobs    []*rssfixer.Job
}

type fileNode struct {
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	Jobs      []yamlv3.Node `yaml:"jobs"`
}

// LoadJobs reads and parses the job file at path.
func LoadJobs(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rssfixer.Errorf(rssfixer.ECONFIG, "unable to read job file %s", path)
	}
	return ParseJobs(data, filepath.Dir(path))
}

// ParseJobs parses a job file. Relative outputs are joined to dir.
func ParseJobs(data []byte, dir string) (*File, error) {
	dec := yamlv3.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var raw fileNode
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, rssfixer.Errorf(rssfixer.ECONFIG, "job file is empty")
		}
		return nil, rssfixer.Errorf(rssfixer.ECONFIG, "unable to parse job file: %v", err)
	}
	if len(raw.Jobs) == 0 {
		return nil, rssfixer.Errorf(rssfixer.ECONFIG, "job file lists no jobs")
	}

	f := &File{
		UserAgent: raw.UserAgent,
		Timeout:   raw.Timeout,
		Jobs:      make([]*rssfixer.Job, 0, len(raw.Jobs)),
	}
	outputs := make(map[string]string, len(raw.Jobs))

	for i := range raw.Jobs {
		node := &raw.Jobs[i]
		job, err := decodeJob(node, dir)
		if err != nil {
			return nil, err
		}
		if prev, ok := outputs[job.Output]; ok {
			return nil, rssfixer.Errorf(rssfixer.ECONFIG, "jobs %q and %q both write %s", prev, job.Name, job.Output)
		}
		outputs[job.Output] = job.Name
		f.Jobs = append(f.Jobs, job)
	}

	return f, nil
}

func decodeJob(node *yamlv3.Node, dir string) (*rssfixer.Job, error) {
	job := &rssfixer.Job{Extract: rssfixer.DefaultExtractConfig("")}
	if err := decodeStrict(node, job); err != nil {
		return nil, rssfixer.Errorf(rssfixer.ECONFIG, "line %d: unable to parse job: %v", node.Line, err)
	}

	if job.Extract.Mode != "" {
		mode, err := rssfixer.ParseMode(string(job.Extract.Mode))
		if err != nil {
			return nil, rssfixer.Errorf(rssfixer.ECONFIG, "line %d: %s", node.Line, rssfixer.ErrorMessage(err))
		}
		job.Extract.Mode = mode
	}
	if job.Name == "" {
		job.Name = job.URL
	}
	if err := job.Validate(); err != nil {
		return nil, rssfixer.Errorf(rssfixer.ErrorCode(err), "job %q: %s", job.Name, rssfixer.ErrorMessage(err))
	}

	if job.Output == "" {
		return nil, rssfixer.Errorf(rssfixer.ECONFIG, "job %q: output required", job.Name)
	}
	if !filepath.IsAbs(job.Output) {
		job.Output = filepath.Join(dir, job.Output)
	}
	return job, nil
}

// decodeStrict decodes node into v rejecting unknown keys. Node.Decode
// does not honour KnownFields, so the node is re-encoded and decoded again.
func decodeStrict(node *yamlv3.Node, v any) error {
	data, err := yamlv3.Marshal(node)
	if err != nil {
		return err
	}
	dec := yamlv3.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}
