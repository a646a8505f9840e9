package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/rssfixer"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	sightings, err := deps.History.FindSightings(deps.Ctx, c.Feed)
	if err != nil {
		return err
	}

	if len(sightings) == 0 {
		return rssfixer.Errorf(rssfixer.ENOTFOUND, "no entries recorded for %s", c.Feed)
	}

	fmt.Fprintf(deps.Stdout, "Entries for %s (%d total):\n\n", c.Feed, len(sightings))
	for _, s := range sightings {
		fmt.Fprintf(deps.Stdout, "  %s  %s\n", s.FirstSeen.Local().Format(time.DateTime), s.Title)
		fmt.Fprintf(deps.Stdout, "  %19s  %s\n", "", s.URL)
	}

	return nil
}
