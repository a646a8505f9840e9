package main

import (
	"fmt"

	"github.com/fwojciec/rssfixer/generate"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	results, err := deps.Generator.GenerateAll(deps.Ctx, deps.Jobs, func(e generate.ProgressEvent) {
		fmt.Fprintln(deps.Stdout, formatResult(e))
	})
	if err != nil {
		return err
	}

	if failed := generate.Failed(results); failed > 0 {
		return fmt.Errorf("%d of %d feeds failed", failed, len(results))
	}
	return nil
}

// formatResult renders one progress line, e.g.
//
//	[2/5] ok    blog: 12 entries -> feeds/blog.xml
func formatResult(e generate.ProgressEvent) string {
	r := e.Result
	if r.Err != nil {
		return fmt.Sprintf("[%d/%d] fail  %s: %s", e.Completed, e.Total, r.Job.Name, errorMessage(r.Err))
	}
	return fmt.Sprintf("[%d/%d] ok    %s: %d entries -> %s", e.Completed, e.Total, r.Job.Name, r.Entries, r.Job.Output)
}
