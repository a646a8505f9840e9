// Package generate runs feed jobs end to end. It coordinates fetching,
// filtering, extraction, history, serialization and writing of feeds.
package generate

import (
	"context"
	"sync"

	"github.com/fwojciec/rssfixer"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of jobs GenerateAll runs at once when
// Concurrency is not set.
const DefaultConcurrency = 3

// WriterFunc returns the destination for a job's feed.
type WriterFunc func(job *rssfixer.Job) rssfixer.FeedWriter

// Generator turns jobs into written feeds.
type Generator struct {
	Fetcher    rssfixer.Fetcher
	Filter     rssfixer.DocumentFilter
	Extractors rssfixer.ExtractorRegistry
	Builder    rssfixer.FeedBuilder
	Writer     WriterFunc

	// History dates items by first sighting. Optional.
	History rssfixer.EntryHistory
	// RateLimiter spaces out fetches to the same domain. Optional.
	RateLimiter rssfixer.DomainLimiter
	Concurrency int

	// Inspect receives the HTML handed to the extractor, after filtering.
	Inspect func(job *rssfixer.Job, html string)
}

// Result holds the outcome of one job.
type Result struct {
	Job     *rssfixer.Job
	Entries int
	Err     error
}

// ProgressEvent reports a finished job during GenerateAll.
type ProgressEvent struct {
	Completed int
	Total     int
	Result    Result
}

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// Generate runs a single job. Configuration is validated and the extractor
// is built before the page is fetched, so a bad job never costs a request.
func (g *Generator) Generate(ctx context.Context, job *rssfixer.Job) (*Result, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}
	extractor, err := g.Extractors.Extractor(job.Extract)
	if err != nil {
		return nil, err
	}

	html, err := g.fetch(ctx, job)
	if err != nil {
		return nil, err
	}

	if job.Filter.Enabled() {
		html, err = g.Filter.Filter(html, job.Filter.Tag, job.Filter.Class)
		if err != nil {
			return nil, err
		}
	}
	if g.Inspect != nil {
		g.Inspect(job, html)
	}

	entries, err := extractor.Extract(html)
	if err != nil {
		return nil, err
	}

	feed := job.Feed()
	items, err := g.items(ctx, feed.ID, entries)
	if err != nil {
		return nil, err
	}
	// Dated feeds change only when their items do, so an unchanged page
	// yields byte-identical output.
	feed.Updated = rssfixer.LatestPublished(items)

	xml, err := g.Builder.Build(feed, items)
	if err != nil {
		return nil, err
	}
	if err := g.Writer(job).WriteFeed(ctx, xml); err != nil {
		return nil, err
	}

	return &Result{Job: job, Entries: len(entries)}, nil
}

func (g *Generator) fetch(ctx context.Context, job *rssfixer.Job) (string, error) {
	if g.RateLimiter != nil {
		if err := g.RateLimiter.Wait(ctx, job.Domain()); err != nil {
			return "", err
		}
	}
	return g.Fetcher.Fetch(ctx, job.URL)
}

func (g *Generator) items(ctx context.Context, feedID string, entries []rssfixer.Entry) ([]rssfixer.Item, error) {
	if g.History == nil {
		return rssfixer.Items(entries), nil
	}
	return g.History.Observe(ctx, feedID, entries)
}

// GenerateAll runs jobs concurrently and returns one Result per job, in job
// order. A failing job is recorded in its Result and does not stop the
// others. The returned error is non-nil only when ctx ends.
func (g *Generator) GenerateAll(ctx context.Context, jobs []*rssfixer.Job, progress ProgressFunc) ([]Result, error) {
	concurrency := g.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]Result, len(jobs))
	// mu serializes progress callbacks so Completed counts up in order.
	var mu sync.Mutex
	var completed int

	var eg errgroup.Group
	eg.SetLimit(concurrency)

	for i, job := range jobs {
		eg.Go(func() error {
			res, err := g.Generate(ctx, job)
			if err != nil {
				res = &Result{Job: job, Err: err}
			}
			results[i] = *res

			mu.Lock()
			defer mu.Unlock()
			completed++
			if progress != nil {
				progress(ProgressEvent{
					Completed: completed,
					Total:     len(jobs),
					Result:    *res,
				})
			}
			return nil
		})
	}
	_ = eg.Wait()

	return results, ctx.Err()
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	var n int
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
